package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

func TestUserUsecase_UploadPhoto(t *testing.T) {
	ctx := context.Background()
	data := []byte{0xff, 0xd8, 0xff}

	t.Run("ReturnsURLForStoredKey", func(t *testing.T) {
		photos := new(MockPhotoStorage)
		photos.On("Upload", ctx, "blazer.jpg", data).Return("photos/abc123.jpg", nil)
		photos.On("URL", "photos/abc123.jpg").Return("http://minio:9000/uniform-photos/photos/abc123.jpg")

		uc := NewUserUsecase(new(MockUserRepository), photos, logger.NewNop())
		url, err := uc.UploadPhoto(ctx, "blazer.jpg", data)

		require.NoError(t, err)
		assert.Equal(t, "http://minio:9000/uniform-photos/photos/abc123.jpg", url)
		photos.AssertExpectations(t)
	})

	t.Run("RejectsUnsupportedExtension", func(t *testing.T) {
		photos := new(MockPhotoStorage)

		uc := NewUserUsecase(new(MockUserRepository), photos, logger.NewNop())
		_, err := uc.UploadPhoto(ctx, "blazer.gif", data)

		assert.ErrorIs(t, err, ErrUnsupportedPhotoType)
		photos.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UploadFailurePropagates", func(t *testing.T) {
		boom := errors.New("bucket unavailable")
		photos := new(MockPhotoStorage)
		photos.On("Upload", ctx, "blazer.png", data).Return("", boom)

		uc := NewUserUsecase(new(MockUserRepository), photos, logger.NewNop())
		_, err := uc.UploadPhoto(ctx, "blazer.png", data)

		assert.ErrorIs(t, err, boom)
		photos.AssertNotCalled(t, "URL", mock.Anything)
	})
}
