package components

import (
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/infra/outbox"
	"vehicle-rental/internal/infra/readstore"
	"vehicle-rental/internal/infra/uow"
	"vehicle-rental/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// PersistenceModule provides the sqlc queries, the read stores behind the
// query services and the unit of work behind the commands.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// dbq.Queries is stateless; every store gets the same instance
		// under the narrow interface it declares.
		fx.Annotate(
			dbq.New,
			fx.As(fx.Self()),
			fx.As(new(readstore.VehicleReadQueries)),
			fx.As(new(readstore.CategoryReadQueries)),
			fx.As(new(readstore.BookingReadQueries)),
			fx.As(new(readstore.ReviewViewQueries)),
			fx.As(new(readstore.UserReadQueries)),
			fx.As(new(outbox.OutboxQueries)),
		),
		func(pool *pgxpool.Pool) dbq.DBTX { return pool },
		uow.NewPostgresUoW,
	),
	fx.Module("persistence/readstore",
		readStore[queries.VehicleReadStore](readstore.NewVehicleReadStore),
		readStore[queries.CategoryReadStore](readstore.NewCategoryReadStore),
		readStore[queries.BookingReadStore](readstore.NewBookingReadStore),
		readStore[queries.ReviewReadStore](readstore.NewReviewReadStore),
		readStore[queries.UserReadStore](readstore.NewUserReadStore),
	),
)

// readStore provides ctor's result as the query-side interface T.
func readStore[T any](ctor any) fx.Option {
	return fx.Provide(fx.Annotate(ctor, fx.As(new(T))))
}
