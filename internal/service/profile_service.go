package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smarthauling/internal/auth"
	apperrors "smarthauling/internal/errors"
	"smarthauling/internal/model"
	"smarthauling/internal/repository"
)

// CompleteProfileInput carries the manual profile-completion form fields.
type CompleteProfileInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Role        model.Role
}

// UpdateProfileInput carries editable profile fields; nil pointers leave the
// current value unchanged.
type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	AvatarURL   *string
	Role        *model.Role
}

// ProfileService resolves and maintains profiles.
type ProfileService interface {
	Resolve(ctx context.Context, identityID uuid.UUID) (*model.Profile, error)
	Update(ctx context.Context, identityID uuid.UUID, in UpdateProfileInput) (*model.Profile, error)
	Complete(ctx context.Context, identityID uuid.UUID, in CompleteProfileInput) (*model.Profile, error)
}

type profileService struct {
	identityRepo repository.IdentityRepository
	profileRepo  repository.ProfileRepository
	tokenStore   auth.TokenStoreInterface
}

// NewProfileService creates a new profile service.
func NewProfileService(
	identityRepo repository.IdentityRepository,
	profileRepo repository.ProfileRepository,
	tokenStore auth.TokenStoreInterface,
) ProfileService {
	return &profileService{
		identityRepo: identityRepo,
		profileRepo:  profileRepo,
		tokenStore:   tokenStore,
	}
}

// Resolve returns the profile for an identity, synthesizing one from identity
// metadata when no row exists yet. A missing profiles table is a fatal
// configuration error; a failed synthesis sends the user to the manual
// completion form.
func (s *profileService) Resolve(ctx context.Context, identityID uuid.UUID) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByID(ctx, identityID)
	if err == nil {
		return profile, nil
	}
	if isMissingTableErr(err) {
		return nil, apperrors.ErrSchemaMissing
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	return s.synthesize(ctx, identityID)
}

// synthesize builds a profile from identity metadata and inserts it.
func (s *profileService) synthesize(ctx context.Context, identityID uuid.UUID) (*model.Profile, error) {
	identity, err := s.identityRepo.FindByID(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("fetch identity: %w", err)
	}

	meta := identity.Metadata
	if meta == nil {
		return nil, apperrors.ErrProfileIncomplete
	}

	firstName := meta[model.MetaFirstName]
	if firstName == "" {
		firstName = meta[model.MetaGivenName]
	}
	lastName := meta[model.MetaLastName]
	if lastName == "" {
		lastName = meta[model.MetaFamilyName]
	}

	role := model.Role(meta[model.MetaRole])
	if role != model.RoleDriver {
		role = model.RolePassenger
	}

	profile := &model.Profile{
		ID:          identityID,
		Email:       identity.Email,
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: meta[model.MetaPhone],
		Role:        role,
		AvatarURL:   meta[model.MetaAvatarURL],
	}
	if role == model.RoleDriver {
		profile.LicenseNumber = meta[model.MetaLicenseNumber]
		if raw := meta[model.MetaLicenseExpiry]; raw != "" {
			if expiry, perr := time.Parse(time.RFC3339, raw); perr == nil {
				profile.LicenseExpiry = &expiry
			}
		}
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if isMissingTableErr(err) {
			return nil, apperrors.ErrSchemaMissing
		}
		log.Printf("synthesize profile for %s: %v", identityID, err)
		return nil, apperrors.ErrProfileIncomplete
	}
	return profile, nil
}

// Update edits the profile. A role change bumps the role version so older
// tokens lose role-gated access.
func (s *profileService) Update(ctx context.Context, identityID uuid.UUID, in UpdateProfileInput) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByID(ctx, identityID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	roleChanged := false
	if in.FirstName != nil {
		profile.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		profile.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		profile.PhoneNumber = *in.PhoneNumber
	}
	if in.AvatarURL != nil {
		profile.AvatarURL = *in.AvatarURL
	}
	if in.Role != nil && *in.Role != profile.Role {
		profile.Role = *in.Role
		roleChanged = true
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if roleChanged {
		if err := s.tokenStore.BumpRoleVersion(ctx, identityID); err != nil {
			log.Printf("bump role version for %s: %v", identityID, err)
		}
	}
	return profile, nil
}

// Complete fills in a profile from the manual completion form: identity
// metadata is updated first, then the profile row is inserted.
func (s *profileService) Complete(ctx context.Context, identityID uuid.UUID, in CompleteProfileInput) (*model.Profile, error) {
	identity, err := s.identityRepo.FindByID(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("fetch identity: %w", err)
	}

	role := in.Role
	if role != model.RoleDriver {
		role = model.RolePassenger
	}

	meta := identity.Metadata
	if meta == nil {
		meta = model.Metadata{}
	}
	meta[model.MetaFirstName] = in.FirstName
	meta[model.MetaLastName] = in.LastName
	meta[model.MetaPhone] = in.PhoneNumber
	meta[model.MetaRole] = string(role)

	if err := s.identityRepo.UpdateMetadata(ctx, identityID, meta); err != nil {
		return nil, fmt.Errorf("update identity metadata: %w", err)
	}

	profile := &model.Profile{
		ID:          identityID,
		Email:       identity.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Role:        role,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if isMissingTableErr(err) {
			return nil, apperrors.ErrSchemaMissing
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}
