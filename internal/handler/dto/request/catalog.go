package request

import "vehicle-rental/internal/usecase/commands"

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	IconClass   string `json:"icon_class" binding:"max=50"`
}

func (r *CategoryRequest) ToInput() commands.CategoryInput {
	return commands.CategoryInput{
		Name:        r.Name,
		Description: r.Description,
		IconClass:   r.IconClass,
	}
}

type ProfileRequest struct {
	Phone          string `json:"phone" binding:"max=15"`
	Address        string `json:"address"`
	DrivingLicense string `json:"driving_license" binding:"max=50"`
	IDProof        string `json:"id_proof" binding:"max=50"`
}

func (r *ProfileRequest) ToInput() commands.ProfileInput {
	return commands.ProfileInput{
		Phone:          r.Phone,
		Address:        r.Address,
		DrivingLicense: r.DrivingLicense,
		IDProof:        r.IDProof,
	}
}
