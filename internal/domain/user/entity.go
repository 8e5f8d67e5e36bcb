package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	id           uuid.UUID
	username     Username
	email        Email
	name         FullName
	passwordHash string
	role         Role
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser registers a new active account.
func NewUser(username Username, email Email, name FullName, passwordHash string, role Role, now time.Time) *User {
	return &User{
		id:           uuid.New(),
		username:     username,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Username() Username    { return u.username }
func (u *User) Email() Email          { return u.email }
func (u *User) Name() FullName        { return u.name }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Role() Role            { return u.role }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) IsActive() bool        { return u.isActive }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }

type ProfileParams struct {
	Phone          string
	Address        string
	DrivingLicense string
	IDProof        string
}

// Profile holds the rental paperwork of a user; one per user.
type Profile struct {
	userID         uuid.UUID
	phone          string
	address        string
	drivingLicense string
	idProof        string
}

func NewProfile(userID uuid.UUID, p ProfileParams) (*Profile, error) {
	phone := strings.TrimSpace(p.Phone)
	if phone != "" && !phoneRegex.MatchString(phone) {
		return nil, ErrInvalidPhone
	}
	license := strings.TrimSpace(p.DrivingLicense)
	idProof := strings.TrimSpace(p.IDProof)
	if len(phone) > MaxPhoneLength ||
		len([]rune(license)) > MaxDrivingLicenseLength ||
		len([]rune(idProof)) > MaxIDProofLength {
		return nil, ErrProfileField
	}

	return &Profile{
		userID:         userID,
		phone:          phone,
		address:        strings.TrimSpace(p.Address),
		drivingLicense: license,
		idProof:        idProof,
	}, nil
}

func (p *Profile) UserID() uuid.UUID      { return p.userID }
func (p *Profile) Phone() string          { return p.phone }
func (p *Profile) Address() string        { return p.address }
func (p *Profile) DrivingLicense() string { return p.drivingLicense }
func (p *Profile) IDProof() string        { return p.idProof }
