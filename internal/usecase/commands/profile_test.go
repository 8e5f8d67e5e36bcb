//go:build unit

package commands_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"strings"
	"testing"
	"time"

	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/pkg/clock"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/commands"
	"vehicle-rental/internal/usecase/shared"
	commandsmock "vehicle-rental/tests/mock/commands"
	sharedmock "vehicle-rental/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ProfileCommandsTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockCtrl *gomock.Controller
	uow      *sharedmock.MockUnitOfWork
	tx       *sharedmock.MockTx
	users    *sharedmock.MockUserRepository
	images   *commandsmock.MockImageStore
	commands commands.ProfileCommands
	now      time.Time
}

func (s *ProfileCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.tx = sharedmock.NewMockTx(s.mockCtrl)
	s.users = sharedmock.NewMockUserRepository(s.mockCtrl)
	s.images = commandsmock.NewMockImageStore(s.mockCtrl)
	s.now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	s.commands = commands.NewProfileCommands(s.uow, s.images, clock.NewMockClock(s.now), maxImageBytes)

	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).AnyTimes()
	s.tx.EXPECT().Users().Return(s.users).AnyTimes()
	s.tx.EXPECT().DB().Return(nil).AnyTimes()
}

func (s *ProfileCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestProfileCommandsSuite(t *testing.T) {
	suite.Run(t, new(ProfileCommandsTestSuite))
}

// webpOf builds a lossless WebP header carrying only the canvas size.
func webpOf(w, h int) []byte {
	bits := uint32(w-1) | uint32(h-1)<<14
	vp8l := binary.LittleEndian.AppendUint32([]byte{0x2f}, bits)
	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(4+8+len(vp8l)+1))
	out = append(out, "WEBPVP8L"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(vp8l)))
	return append(append(out, vp8l...), 0)
}

func (s *ProfileCommandsTestSuite) TestUpdate() {
	userID := uuid.New()

	s.Run("success: saves the trimmed profile", func() {
		s.users.EXPECT().SaveProfile(gomock.Any(), gomock.Any(), gomock.Any(), s.now).Return(nil).Times(1)

		err := s.commands.Update(s.ctx, userID, commands.ProfileInput{Phone: " +91 98765-43210 ", Address: "MG Road"})

		s.NoError(err)
	})

	s.Run("error: bad phone never opens a transaction", func() {
		err := s.commands.Update(s.ctx, userID, commands.ProfileInput{Phone: "call me"})

		s.True(errs.Is(err, errs.ErrValidation))
	})
}

func (s *ProfileCommandsTestSuite) TestUploadPicture() {
	userID := uuid.New()

	s.Run("success: webp pictures are stored under the profile prefix", func() {
		pic := webpOf(640, 480)
		url := "http://localhost:9000/vehicle-images/profiles/" + userID.String() + "/p.webp"
		s.images.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), int64(len(pic)), "image/webp").
			DoAndReturn(func(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
				s.True(strings.HasPrefix(key, "profiles/"+userID.String()+"/"))
				s.True(strings.HasSuffix(key, ".webp"))
				data, err := io.ReadAll(body)
				s.NoError(err)
				s.Equal(pic, data)
				return url, nil
			}).Times(1)
		s.users.EXPECT().SaveProfilePicture(gomock.Any(), gomock.Any(), userID, url, s.now).Return(nil).Times(1)

		got, err := s.commands.UploadPicture(s.ctx, userID, commands.ImageUpload{
			Body: bytes.NewReader(pic), Size: int64(len(pic)), ContentType: "image/webp",
		})

		s.Require().NoError(err)
		s.Equal(url, got)
	})

	s.Run("success: png pictures are accepted", func() {
		pic := pngOf(10, 10)
		s.images.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), int64(len(pic)), "image/png").Return("http://img/p.png", nil).Times(1)
		s.users.EXPECT().SaveProfilePicture(gomock.Any(), gomock.Any(), userID, "http://img/p.png", s.now).Return(nil).Times(1)

		_, err := s.commands.UploadPicture(s.ctx, userID, commands.ImageUpload{
			Body: bytes.NewReader(pic), Size: int64(len(pic)), ContentType: "image/png",
		})

		s.NoError(err)
	})

	s.Run("error: rejected before touching storage", func() {
		big := webpOf(4001, 10)
		pic := pngOf(10, 10)
		cases := []struct {
			name string
			img  commands.ImageUpload
			want error
		}{
			{"empty", commands.ImageUpload{}, commands.ErrImageRequired},
			{"gif", commands.ImageUpload{Body: bytes.NewReader(pic), Size: int64(len(pic)), ContentType: "image/gif"}, commands.ErrProfileImageType},
			{"png labelled as webp", commands.ImageUpload{Body: bytes.NewReader(pic), Size: int64(len(pic)), ContentType: "image/webp"}, commands.ErrProfileImageType},
			{"webp wider than 4000", commands.ImageUpload{Body: bytes.NewReader(big), Size: int64(len(big)), ContentType: "image/webp"}, commands.ErrImageDimensions},
			{"not an image", commands.ImageUpload{Body: strings.NewReader("RIFF????WEBPjunk"), Size: 16, ContentType: "image/webp"}, commands.ErrImageInvalid},
		}
		for _, tc := range cases {
			_, err := s.commands.UploadPicture(s.ctx, userID, tc.img)
			s.ErrorIs(err, tc.want, tc.name)
		}
	})

	s.Run("error: a missing profile row is not found", func() {
		pic := pngOf(10, 10)
		s.images.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("http://img/p.png", nil).Times(1)
		s.users.EXPECT().SaveProfilePicture(gomock.Any(), gomock.Any(), userID, gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("profile not found", nil, infra.KindNotFound)).Times(1)

		_, err := s.commands.UploadPicture(s.ctx, userID, commands.ImageUpload{
			Body: bytes.NewReader(pic), Size: int64(len(pic)), ContentType: "image/png",
		})

		s.ErrorIs(err, commands.ErrProfileNotFound)
		s.True(errs.Is(err, errs.ErrNotFound))
	})

	s.Run("error: storage failure is reported as an upload error", func() {
		pic := pngOf(10, 10)
		s.images.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errs.New("connection refused")).Times(1)

		_, err := s.commands.UploadPicture(s.ctx, userID, commands.ImageUpload{
			Body: bytes.NewReader(pic), Size: int64(len(pic)), ContentType: "image/png",
		})

		s.True(errs.Is(err, commands.ErrImageUpload))
	})
}
