package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smarthauling/internal/auth"
	"smarthauling/internal/model"
	"smarthauling/internal/repository"
	"smarthauling/internal/storage"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserAlreadyExists is returned when trying to register an existing user.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// AvatarUpload is an optional profile picture chosen at registration.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// RegisterInput is the full registration submission.
type RegisterInput struct {
	RegistrationInput
	Avatar     *AvatarUpload
	RememberMe bool
}

// RegisterResult reports the outcome of a registration.
type RegisterResult struct {
	Profile          *model.Profile `json:"profile"`
	PasswordStrength int            `json:"password_strength"`
	// Token pair is present only when the caller asked to stay signed in.
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// AuthService handles registration and session operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, profile *model.Profile, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	identityRepo repository.IdentityRepository
	profileRepo  repository.ProfileRepository
	uploader     storage.Uploader
	jwtService   *auth.JWTService
	tokenStore   auth.TokenStoreInterface
	validator    *RegistrationValidator
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	identityRepo repository.IdentityRepository,
	profileRepo repository.ProfileRepository,
	uploader storage.Uploader,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
) AuthService {
	return &authService{
		identityRepo: identityRepo,
		profileRepo:  profileRepo,
		uploader:     uploader,
		jwtService:   jwtService,
		tokenStore:   tokenStore,
		validator:    NewRegistrationValidator(),
	}
}

// Register runs the registration sequence: validate, best-effort avatar
// upload, identity creation, profile insert. A failed profile insert deletes
// the just-created identity so no orphan identities are left behind; a
// missing profiles table is tolerated and resolved later by the profile
// resolver.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	if verr := s.validator.Validate(in.RegistrationInput); verr != nil {
		return nil, verr
	}

	existing, err := s.identityRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check identity existence: %w", err)
	}

	avatarURL := s.uploadAvatar(in.Avatar)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	phone := s.validator.FullPhoneNumber(in.CountryCode, in.PhoneNumber)
	role := in.Role
	if role == "" {
		role = model.RolePassenger
	}

	metadata := model.Metadata{
		model.MetaFirstName: in.FirstName,
		model.MetaLastName:  in.LastName,
		model.MetaPhone:     phone,
		model.MetaRole:      string(role),
	}
	if avatarURL != "" {
		metadata[model.MetaAvatarURL] = avatarURL
	}
	if role == model.RoleDriver {
		metadata[model.MetaLicenseNumber] = in.LicenseNumber
		metadata[model.MetaLicenseExpiry] = in.LicenseExpiry.Format(time.RFC3339)
	}

	identity := &model.Identity{
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		Metadata:     metadata,
	}
	if err := s.identityRepo.Create(ctx, identity); err != nil {
		return nil, fmt.Errorf("create identity: %w", err)
	}

	profile := &model.Profile{
		ID:          identity.ID,
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: phone,
		Role:        role,
		AvatarURL:   avatarURL,
	}
	if role == model.RoleDriver {
		profile.LicenseNumber = in.LicenseNumber
		profile.LicenseExpiry = in.LicenseExpiry
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if isMissingTableErr(err) {
			// Resolved later from identity metadata by the profile resolver.
			log.Printf("profiles table missing, deferring profile for %s", identity.ID)
		} else {
			if delErr := s.identityRepo.Delete(ctx, identity.ID); delErr != nil {
				log.Printf("compensate identity %s: %v", identity.ID, delErr)
			}
			return nil, fmt.Errorf("create profile: %w", err)
		}
	}

	result := &RegisterResult{
		Profile:          profile,
		PasswordStrength: PasswordStrength(in.Password),
	}

	if in.RememberMe {
		access, refresh, err := s.issueTokens(ctx, identity, role)
		if err != nil {
			return nil, err
		}
		result.AccessToken = access
		result.RefreshToken = refresh
	}

	return result, nil
}

// uploadAvatar stores the profile picture if one was chosen. Failures are
// non-fatal; registration continues without an avatar.
func (s *authService) uploadAvatar(avatar *AvatarUpload) string {
	if avatar == nil {
		return ""
	}
	name := storage.RandomObjectName(avatar.Filename)
	url, err := s.uploader.UploadPublic(storage.ProfilePictures, name, avatar.Content, avatar.ContentType)
	if err != nil {
		log.Printf("avatar upload failed, continuing without: %v", err)
		return ""
	}
	return url
}

// Login authenticates an identity and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, profile *model.Profile, err error) {
	identity, err := s.identityRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	role := model.RolePassenger
	profile, perr := s.profileRepo.FindByID(ctx, identity.ID)
	if perr == nil && profile != nil {
		role = profile.Role
	}

	accessToken, refreshToken, err = s.issueTokens(ctx, identity, role)
	if err != nil {
		return "", "", nil, err
	}
	return accessToken, refreshToken, profile, nil
}

func (s *authService) issueTokens(ctx context.Context, identity *model.Identity, role model.Role) (string, string, error) {
	roleVersion, _ := s.tokenStore.RoleVersion(ctx, identity.ID)

	access, err := s.jwtService.GenerateAccessToken(identity.ID, identity.Email, role, roleVersion)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refresh, err := s.jwtService.GenerateRefreshToken(identity.ID, identity.Email)
	if err != nil {
		return "", "", fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, identity.ID, identity.Email, auth.RefreshTokenExpiry); err != nil {
		return "", "", fmt.Errorf("store refresh token: %w", err)
	}
	return access, refresh, nil
}

// Refresh validates a refresh token and returns a new access token with the
// current role and role version.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (accessToken string, err error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if storedUserID.String() != claims.UserID || storedEmail != claims.Email {
		return "", ErrInvalidRefreshToken
	}

	role := model.RolePassenger
	if profile, perr := s.profileRepo.FindByID(ctx, storedUserID); perr == nil && profile != nil {
		role = profile.Role
	}
	roleVersion, _ := s.tokenStore.RoleVersion(ctx, storedUserID)

	accessToken, err = s.jwtService.GenerateAccessToken(storedUserID, storedEmail, role, roleVersion)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

// isMissingTableErr reports whether the database rejected a statement because
// the target table does not exist (MySQL error 1146).
func isMissingTableErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "error 1146") ||
		strings.Contains(msg, "doesn't exist") ||
		strings.Contains(msg, "does not exist")
}
