package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/user"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

var ErrUnsupportedPhotoType = errors.New("unsupported photo file type")

type UserUsecase struct {
	repo   user.Repository
	photos PhotoStorage
	logger logger.Logger
}

func NewUserUsecase(repo user.Repository, photos PhotoStorage, log logger.Logger) *UserUsecase {
	return &UserUsecase{repo: repo, photos: photos, logger: log}
}

// SaveProfile creates or updates the caller's own profile.
func (uc *UserUsecase) SaveProfile(ctx context.Context, userID string, p *user.Profile) (*user.Profile, error) {
	p.UserID = userID
	p.UpdatedAt = time.Now().UTC()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, p); err != nil {
		uc.logger.Errorf("SaveProfile: failed for %s: %v", userID, err)
		return nil, err
	}
	return p, nil
}

func (uc *UserUsecase) GetProfile(ctx context.Context, userID string) (*user.Profile, error) {
	return uc.repo.FindByID(ctx, userID)
}

// GetPublicProfile strips the gated contact fields.
func (uc *UserUsecase) GetPublicProfile(ctx context.Context, userID string) (*user.PublicView, error) {
	p, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	pv := p.Public()
	return &pv, nil
}

var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadPhoto stores a listing photo and returns its public URL.
func (uc *UserUsecase) UploadPhoto(ctx context.Context, fileName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedPhotoExtensions[ext] {
		return "", ErrUnsupportedPhotoType
	}
	key, err := uc.photos.Upload(ctx, fileName, data)
	if err != nil {
		uc.logger.Errorf("UploadPhoto: %v", err)
		return "", err
	}
	return uc.photos.URL(key), nil
}
