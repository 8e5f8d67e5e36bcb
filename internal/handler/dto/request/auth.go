package request

import "vehicle-rental/internal/usecase/commands"

type RegisterRequest struct {
	Username       string `json:"username" binding:"required,min=3,max=150"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	FirstName      string `json:"first_name" binding:"required,max=150"`
	LastName       string `json:"last_name" binding:"required,max=150"`
	Phone          string `json:"phone" binding:"max=15"`
	Address        string `json:"address"`
	DrivingLicense string `json:"driving_license" binding:"max=50"`
	IDProof        string `json:"id_proof" binding:"max=50"`
}

func (r *RegisterRequest) ToInput() commands.RegisterInput {
	return commands.RegisterInput{
		Username:       r.Username,
		Email:          r.Email,
		Password:       r.Password,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Phone:          r.Phone,
		Address:        r.Address,
		DrivingLicense: r.DrivingLicense,
		IDProof:        r.IDProof,
	}
}

// LoginRequest accepts a username or an email in Username.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) ToInput() commands.LoginInput {
	return commands.LoginInput{Identifier: r.Username, Password: r.Password}
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
