package readstore

import (
	"strings"
	"time"

	"vehicle-rental/internal/domain/vehicle"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jinzhu/copier"
)

// copyOption teaches copier the nullable pgtype wrappers used by the rows.
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: pgtype.Timestamptz{},
			DstType: time.Time{},
			Fn: func(src any) (any, error) {
				return src.(pgtype.Timestamptz).Time, nil
			},
		},
		{
			SrcType: pgtype.Timestamptz{},
			DstType: (*time.Time)(nil),
			Fn: func(src any) (any, error) {
				ts := src.(pgtype.Timestamptz)
				if !ts.Valid {
					return (*time.Time)(nil), nil
				}
				t := ts.Time
				return &t, nil
			},
		},
		{
			SrcType: pgtype.Text{},
			DstType: (*string)(nil),
			Fn: func(src any) (any, error) {
				txt := src.(pgtype.Text)
				if !txt.Valid {
					return (*string)(nil), nil
				}
				s := txt.String
				return &s, nil
			},
		},
		{
			// features are stored as one comma-separated column
			SrcType: "",
			DstType: []string{},
			Fn: func(src any) (any, error) {
				return vehicle.ParseFeatures(src.(string)), nil
			},
		},
	},
}

func copyRow(dst, src any) error {
	return copier.CopyWithOption(dst, src, copyOption)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
