package queries

import "vehicle-rental/internal/pkg/errs"

var (
	ErrVehicleNotFound     = errs.Mark(errs.New("vehicle not found"), errs.ErrNotFound)
	ErrCategoryNotFound    = errs.Mark(errs.New("category not found"), errs.ErrNotFound)
	ErrBookingNotFound     = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)
	ErrReviewNotFound      = errs.Mark(errs.New("review not found"), errs.ErrNotFound)
	ErrUserNotFound        = errs.Mark(errs.New("user not found"), errs.ErrNotFound)
	ErrUserInactive        = errs.Mark(errs.New("user inactive"), errs.ErrForbidden)
	ErrInvalidCursor       = errs.Mark(errs.New("invalid cursor"), errs.ErrValidation)
	ErrInvalidRatingFilter = errs.Mark(errs.New("rating filter must be between 1 and 5"), errs.ErrValidation)
	ErrInvalidPriceFilter  = errs.Mark(errs.New("price filters must be non-negative"), errs.ErrValidation)
)
