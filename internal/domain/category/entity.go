package category

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const (
	MaxNameLength      = 100
	MaxIconClassLength = 50
)

var (
	ErrEmptyName        = errors.New("category name is required")
	ErrNameTooLong      = errors.New("category name exceeds maximum length")
	ErrIconClassTooLong = errors.New("icon class exceeds maximum length")
)

type Category struct {
	id          uuid.UUID
	name        string
	description string
	iconClass   string
}

func NewCategory(name, description, iconClass string) (*Category, error) {
	name = strings.TrimSpace(name)
	iconClass = strings.TrimSpace(iconClass)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len([]rune(name)) > MaxNameLength {
		return nil, ErrNameTooLong
	}
	if len([]rune(iconClass)) > MaxIconClassLength {
		return nil, ErrIconClassTooLong
	}
	return &Category{
		id:          uuid.New(),
		name:        name,
		description: strings.TrimSpace(description),
		iconClass:   iconClass,
	}, nil
}

func (c *Category) ID() uuid.UUID       { return c.id }
func (c *Category) Name() string        { return c.name }
func (c *Category) Description() string { return c.description }
func (c *Category) IconClass() string   { return c.iconClass }
