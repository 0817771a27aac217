package user

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/abdussamadse/todo-server/internal/domain"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldFullName    = "full_name"
	fieldBio         = "bio"
	fieldDesignation = "designation"
	fieldAvatar      = "avatar"
)

type Service interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error)
	UploadAvatar(ctx context.Context, userID, filename string, r io.Reader, contentType string) (string, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.User, string, error)
	Delete(ctx context.Context, userID string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	Delete(ctx context.Context, userID string) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

type service struct {
	repo    userStore
	objects objectStore
}

func NewService(repo userStore, objects objectStore) Service {
	return &service{repo: repo, objects: objects}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return u, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates[fieldFullName] = *req.FullName
	}
	if req.Bio != nil {
		updates[fieldBio] = *req.Bio
	}
	if req.Designation != nil {
		updates[fieldDesignation] = *req.Designation
	}
	if len(updates) == 0 {
		return s.Get(ctx, userID)
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// UploadAvatar stores the image under a per-user key (so replacement is an
// overwrite) and records the object URL on the user.
func (s *service) UploadAvatar(ctx context.Context, userID, filename string, r io.Reader, contentType string) (string, error) {
	if _, err := s.repo.Get(ctx, userID); err != nil {
		return "", fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	key := "avatars/avatar_" + userID + strings.ToLower(path.Ext(filename))
	url, err := s.objects.Upload(ctx, key, r, contentType)
	if err != nil {
		return "", err
	}
	if err := s.repo.Update(ctx, userID, map[string]interface{}{fieldAvatar: url}); err != nil {
		return "", err
	}
	return url, nil
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.User, string, error) {
	if limit < 1 {
		limit = 10
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

func (s *service) Delete(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}
