package services

import (
	"context"
	"crypto/rand"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arcians/profile-registry/internal/models"
	"github.com/arcians/profile-registry/internal/repository"
	appErr "github.com/arcians/profile-registry/pkg/errors"
	"github.com/arcians/profile-registry/pkg/logger"
	"github.com/arcians/profile-registry/pkg/timeutil"
)

// MaxListProfiles caps a single ListProfiles call.
const MaxListProfiles = 1000

// ProfileService is the profile registry: create once, read many.
type ProfileService interface {
	CreateProfile(ctx context.Context, input *CreateProfileInput) (*models.Profile, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	Ping(ctx context.Context) error
}

// CreateProfileInput carries client supplied fields. Optional fields are nil
// when absent.
type CreateProfileInput struct {
	Name     string
	Bio      *string
	Role     string
	PhotoURL *string
}

// ProfileServiceOption customizes a profile service.
type ProfileServiceOption func(*profileService)

// WithEntropy replaces crypto/rand as the encrypted id source.
func WithEntropy(r io.Reader) ProfileServiceOption {
	return func(s *profileService) { s.entropy = r }
}

// WithClock replaces the creation timestamp source.
func WithClock(now func() timeutil.Time) ProfileServiceOption {
	return func(s *profileService) { s.now = now }
}

// WithIDGenerator replaces the primary key generator.
func WithIDGenerator(gen func() string) ProfileServiceOption {
	return func(s *profileService) { s.newID = gen }
}

type profileService struct {
	profiles repository.ProfileRepository
	entropy  io.Reader
	now      func() timeutil.Time
	newID    func() string
}

func NewProfileService(profiles repository.ProfileRepository, opts ...ProfileServiceOption) ProfileService {
	s := &profileService{
		profiles: profiles,
		entropy:  rand.Reader,
		now:      timeutil.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ProfileService = (*profileService)(nil)

// CreateProfile assigns id, encrypted_id and created_at, then persists the
// record. Nothing is retried.
func (s *profileService) CreateProfile(ctx context.Context, input *CreateProfileInput) (*models.Profile, error) {
	if input == nil {
		return nil, appErr.New(appErr.CodeInvalid, "profile input is required")
	}

	encryptedID, err := NewEncryptedID(s.entropy)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "generate encrypted id failed")
	}

	p := &models.Profile{
		ID:          s.newID(),
		Name:        input.Name,
		Bio:         input.Bio,
		Role:        input.Role,
		PhotoURL:    input.PhotoURL,
		EncryptedID: encryptedID,
		CreatedAt:   s.now(),
	}

	if err := s.profiles.Create(ctx, p); err != nil {
		logger.L().Error("create profile failed", zap.String("profile_id", p.ID), zap.Error(err))
		return nil, err
	}

	logger.L().Info("profile created",
		zap.String("profile_id", p.ID),
		zap.String("encrypted_id", p.EncryptedID),
		zap.Bool("has_photo", p.PhotoURL != nil),
	)
	return p, nil
}

func (s *profileService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	logger.L().Debug("get profile", zap.String("profile_id", id))
	var p models.Profile
	if err := s.profiles.GetByID(ctx, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProfiles returns at most MaxListProfiles records in store order.
func (s *profileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	out, err := s.profiles.List(ctx, MaxListProfiles)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Profile{}
	}
	// repositories outside this module may ignore the limit
	if len(out) > MaxListProfiles {
		out = out[:MaxListProfiles]
	}
	logger.L().Debug("list profiles", zap.Int("count", len(out)))
	return out, nil
}

func (s *profileService) Ping(ctx context.Context) error {
	return s.profiles.Ping(ctx)
}
