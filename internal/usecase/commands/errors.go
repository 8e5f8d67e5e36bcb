package commands

import "vehicle-rental/internal/pkg/errs"

var (
	ErrInvalidCredentials = errs.New("invalid username or password")
	ErrTokenValidation    = errs.New("token validation failed")
	ErrTokenGeneration    = errs.New("token generation failed")
	ErrUserInactive       = errs.Mark(errs.New("user account is inactive"), errs.ErrForbidden)
	ErrUserNotFound       = errs.Mark(errs.New("user not found"), errs.ErrNotFound)
	ErrUsernameTaken      = errs.Mark(errs.New("username already exists"), errs.ErrConflict)
	ErrEmailTaken         = errs.Mark(errs.New("email already registered"), errs.ErrConflict)

	ErrVehicleNotFound  = errs.Mark(errs.New("vehicle not found"), errs.ErrNotFound)
	ErrCategoryNotFound = errs.Mark(errs.New("category not found"), errs.ErrNotFound)
	ErrBookingNotFound  = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)
	ErrReviewNotFound   = errs.Mark(errs.New("review not found"), errs.ErrNotFound)

	ErrVehicleUnavailable    = errs.Mark(errs.New("vehicle is not available"), errs.ErrConflict)
	ErrBookingOverlap        = errs.Mark(errs.New("vehicle is already booked for the selected dates"), errs.ErrConflict)
	ErrInvalidTransition     = errs.Mark(errs.New("booking status transition not allowed"), errs.ErrConflict)
	ErrIdempotencyInProgress = errs.Mark(errs.New("a request with this idempotency key is in progress"), errs.ErrConflict)
	ErrIdempotencyMismatch   = errs.Mark(errs.New("idempotency key reused with a different request"), errs.ErrConflict)
	ErrDuplicateReview       = errs.Mark(errs.New("you have already reviewed this vehicle"), errs.ErrConflict)
	ErrDuplicateCategory     = errs.Mark(errs.New("category already exists"), errs.ErrConflict)
	ErrDuplicateVehicle      = errs.Mark(errs.New("vehicle name already exists"), errs.ErrConflict)
	ErrNotOwner              = errs.Mark(errs.New("you do not have permission to modify this resource"), errs.ErrForbidden)
	ErrStaffOnly             = errs.Mark(errs.New("staff access required"), errs.ErrForbidden)

	ErrImageRequired    = errs.Mark(errs.New("image file is required"), errs.ErrValidation)
	ErrImageTooLarge    = errs.Mark(errs.New("image exceeds maximum size"), errs.ErrValidation)
	ErrImageType        = errs.Mark(errs.New("image must be a JPEG or PNG"), errs.ErrValidation)
	ErrProfileImageType = errs.Mark(errs.New("image must be a JPEG, PNG or WebP"), errs.ErrValidation)
	ErrImageInvalid     = errs.Mark(errs.New("file is not a readable image"), errs.ErrValidation)
	ErrImageDimensions  = errs.Mark(errs.New("image dimensions cannot exceed 4000x4000 pixels"), errs.ErrValidation)
	ErrProfileNotFound  = errs.Mark(errs.New("profile not found; save your profile first"), errs.ErrNotFound)
	ErrImageUpload      = errs.New("image upload failed")
	ErrDatabaseFailed   = errs.New("database operation failed")
	ErrIdempotencyCheck = errs.New("idempotency check failed")
)

// invalid marks a domain rule violation so its message reaches the client.
func invalid(err error) error {
	return errs.Mark(err, errs.ErrValidation)
}
