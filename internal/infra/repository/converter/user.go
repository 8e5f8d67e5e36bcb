package converter

import (
	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/pkg/pgconv"
)

func UserToCreateParams(u *user.User) dbq.CreateUserParams {
	return dbq.CreateUserParams{
		ID:           u.ID(),
		Username:     u.Username().Value(),
		Email:        u.Email().Value(),
		FirstName:    u.Name().First(),
		LastName:     u.Name().Last(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		IsActive:     u.IsActive(),
		CreatedAt:    pgconv.TimeToPgtype(u.CreatedAt()),
	}
}
