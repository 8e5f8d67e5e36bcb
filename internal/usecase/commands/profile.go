package commands

import (
	"context"
	"log/slog"

	"vehicle-rental/internal/domain/user"
	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProfileInput struct {
	Phone          string
	Address        string
	DrivingLicense string
	IDProof        string
}

type ProfileCommands interface {
	Update(ctx context.Context, userID uuid.UUID, in ProfileInput) error
	UploadPicture(ctx context.Context, userID uuid.UUID, img ImageUpload) (string, error)
}

type profileCommandsImpl struct {
	uow           shared.UnitOfWork
	images        ImageStore
	clock         clock.Clock
	maxImageBytes int64
}

func NewProfileCommands(uow shared.UnitOfWork, images ImageStore, clk clock.Clock, maxImageBytes int64) ProfileCommands {
	return &profileCommandsImpl{uow: uow, images: images, clock: clk, maxImageBytes: maxImageBytes}
}

// Update creates the profile on first save and replaces it afterwards.
func (c *profileCommandsImpl) Update(ctx context.Context, userID uuid.UUID, in ProfileInput) error {
	p, err := user.NewProfile(userID, user.ProfileParams{
		Phone:          in.Phone,
		Address:        in.Address,
		DrivingLicense: in.DrivingLicense,
		IDProof:        in.IDProof,
	})
	if err != nil {
		return invalid(err)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().SaveProfile(ctx, tx.DB(), p, c.clock.Now()); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return ErrUserNotFound
			}
			return errs.Mark(err, ErrDatabaseFailed)
		}
		return nil
	})
}

// UploadPicture stores a JPEG, PNG or WebP picture for an existing profile.
func (c *profileCommandsImpl) UploadPicture(ctx context.Context, userID uuid.UUID, img ImageUpload) (string, error) {
	ext, body, err := profileImages.check(img, c.maxImageBytes)
	if err != nil {
		return "", err
	}

	key := "profiles/" + userID.String() + "/" + uuid.NewString() + ext
	url, err := c.images.Put(ctx, key, body, img.Size, img.ContentType)
	if err != nil {
		return "", errs.Mark(errs.Wrapf(err, "put object %s", key), ErrImageUpload)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().SaveProfilePicture(ctx, tx.DB(), userID, url, c.clock.Now()); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrProfileNotFound
			}
			return errs.Mark(err, ErrDatabaseFailed)
		}
		return nil
	})
	if err != nil {
		slog.Warn("uploaded profile picture left unlinked", "user_id", userID, "key", key)
		return "", err
	}

	slog.Info("profile picture uploaded", "user_id", userID, "key", key)
	return url, nil
}
