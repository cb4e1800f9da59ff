package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smarthauling/internal/auth"
	"smarthauling/internal/model"
)

func validRegistration(role model.Role) RegistrationInput {
	expiry := time.Now().AddDate(2, 0, 0)
	in := RegistrationInput{
		FirstName:       "Jamie",
		LastName:        "Carter",
		Email:           "jamie@example.com",
		CountryCode:     "+1",
		PhoneNumber:     "(206) 555-0134",
		Password:        "Abcdefg1!",
		ConfirmPassword: "Abcdefg1!",
		Role:            role,
		TermsAccepted:   true,
	}
	if role == model.RoleDriver {
		in.LicenseNumber = "WDL1234567"
		in.LicenseExpiry = &expiry
	}
	return in
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         func() RegisterInput
		setupMock     func(*MockIdentityRepository, *MockProfileRepository)
		wantFields    []string
		expectedError error
	}{
		{
			name: "successful passenger registration",
			input: func() RegisterInput {
				return RegisterInput{RegistrationInput: validRegistration(model.RolePassenger)}
			},
			setupMock: func(mi *MockIdentityRepository, mp *MockProfileRepository) {
				mi.On("FindByEmail", mock.Anything, "jamie@example.com").Return(nil, gorm.ErrRecordNotFound)
				mi.On("Create", mock.Anything, mock.AnythingOfType("*model.Identity")).Return(nil).Once()
				mp.On("Create", mock.Anything, mock.AnythingOfType("*model.Profile")).Return(nil).Once()
			},
		},
		{
			name: "driver without license fields makes no backend call",
			input: func() RegisterInput {
				in := validRegistration(model.RoleDriver)
				in.LicenseNumber = ""
				in.LicenseExpiry = nil
				return RegisterInput{RegistrationInput: in}
			},
			setupMock:  func(mi *MockIdentityRepository, mp *MockProfileRepository) {},
			wantFields: []string{"license_number", "license_expiry"},
		},
		{
			name: "mismatched password confirmation",
			input: func() RegisterInput {
				in := validRegistration(model.RolePassenger)
				in.ConfirmPassword = "Different1!"
				return RegisterInput{RegistrationInput: in}
			},
			setupMock:  func(mi *MockIdentityRepository, mp *MockProfileRepository) {},
			wantFields: []string{"confirm_password"},
		},
		{
			name: "user already exists",
			input: func() RegisterInput {
				return RegisterInput{RegistrationInput: validRegistration(model.RolePassenger)}
			},
			setupMock: func(mi *MockIdentityRepository, mp *MockProfileRepository) {
				mi.On("FindByEmail", mock.Anything, "jamie@example.com").Return(&model.Identity{Email: "jamie@example.com"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockIdentities := new(MockIdentityRepository)
			mockProfiles := new(MockProfileRepository)
			tt.setupMock(mockIdentities, mockProfiles)

			jwtService := auth.NewJWTService("test-secret")
			mockTokenStore := new(MockTokenStore)
			mockUploader := new(MockUploader)

			service := NewAuthService(mockIdentities, mockProfiles, mockUploader, jwtService, mockTokenStore)
			result, err := service.Register(context.Background(), tt.input())

			switch {
			case len(tt.wantFields) > 0:
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
				for _, field := range tt.wantFields {
					assert.Contains(t, verr.Fields, field)
				}
				assert.Nil(t, result)
			case tt.expectedError != nil:
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, result)
			default:
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, "jamie@example.com", result.Profile.Email)
				assert.Equal(t, "+12065550134", result.Profile.PhoneNumber)
				assert.Equal(t, 100, result.PasswordStrength)
				assert.Empty(t, result.AccessToken)
			}

			mockIdentities.AssertExpectations(t)
			mockProfiles.AssertExpectations(t)
			mockUploader.AssertNotCalled(t, "UploadPublic")
		})
	}
}

func TestAuthService_Register_CompensatesFailedProfile(t *testing.T) {
	mockIdentities := new(MockIdentityRepository)
	mockProfiles := new(MockProfileRepository)

	mockIdentities.On("FindByEmail", mock.Anything, "jamie@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockIdentities.On("Create", mock.Anything, mock.AnythingOfType("*model.Identity")).Return(nil)
	mockProfiles.On("Create", mock.Anything, mock.AnythingOfType("*model.Profile")).Return(assert.AnError)
	mockIdentities.On("Delete", mock.Anything, mock.Anything).Return(nil).Once()

	service := NewAuthService(mockIdentities, mockProfiles, new(MockUploader), auth.NewJWTService("test-secret"), new(MockTokenStore))
	result, err := service.Register(context.Background(), RegisterInput{RegistrationInput: validRegistration(model.RolePassenger)})

	assert.Error(t, err)
	assert.Nil(t, result)
	mockIdentities.AssertExpectations(t)
}

func TestAuthService_Register_ToleratesMissingProfilesTable(t *testing.T) {
	mockIdentities := new(MockIdentityRepository)
	mockProfiles := new(MockProfileRepository)

	mockIdentities.On("FindByEmail", mock.Anything, "jamie@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockIdentities.On("Create", mock.Anything, mock.AnythingOfType("*model.Identity")).Return(nil)
	mockProfiles.On("Create", mock.Anything, mock.AnythingOfType("*model.Profile")).
		Return(&mockMySQLError{msg: "Error 1146 (42S02): Table 'smarthauling.profiles' doesn't exist"})

	service := NewAuthService(mockIdentities, mockProfiles, new(MockUploader), auth.NewJWTService("test-secret"), new(MockTokenStore))
	result, err := service.Register(context.Background(), RegisterInput{RegistrationInput: validRegistration(model.RolePassenger)})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	mockIdentities.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

type mockMySQLError struct{ msg string }

func (e *mockMySQLError) Error() string { return e.msg }

func TestAuthService_Register_RememberMeIssuesTokens(t *testing.T) {
	mockIdentities := new(MockIdentityRepository)
	mockProfiles := new(MockProfileRepository)
	mockTokenStore := new(MockTokenStore)

	mockIdentities.On("FindByEmail", mock.Anything, "jamie@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockIdentities.On("Create", mock.Anything, mock.AnythingOfType("*model.Identity")).Return(nil)
	mockProfiles.On("Create", mock.Anything, mock.AnythingOfType("*model.Profile")).Return(nil)
	mockTokenStore.On("RoleVersion", mock.Anything, mock.Anything).Return(int64(0), nil)
	mockTokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "jamie@example.com", auth.RefreshTokenExpiry).Return(nil)

	service := NewAuthService(mockIdentities, mockProfiles, new(MockUploader), auth.NewJWTService("test-secret"), mockTokenStore)
	result, err := service.Register(context.Background(), RegisterInput{
		RegistrationInput: validRegistration(model.RolePassenger),
		RememberMe:        true,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	mockTokenStore.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	userID := uuid.New()
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Abcdefg1!"), 10)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockIdentityRepository, *MockProfileRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "jamie@example.com",
			password: "Abcdefg1!",
			setupMock: func(mi *MockIdentityRepository, mp *MockProfileRepository, mt *MockTokenStore) {
				mi.On("FindByEmail", mock.Anything, "jamie@example.com").Return(&model.Identity{
					ID:           userID,
					Email:        "jamie@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
				mp.On("FindByID", mock.Anything, userID).Return(&model.Profile{
					ID:   userID,
					Role: model.RoleDriver,
				}, nil)
				mt.On("RoleVersion", mock.Anything, userID).Return(int64(0), nil)
				mt.On("StoreRefreshToken", mock.Anything, mock.Anything, userID, "jamie@example.com", mock.Anything).Return(nil)
			},
		},
		{
			name:     "invalid credentials - identity not found",
			email:    "notfound@example.com",
			password: "Abcdefg1!",
			setupMock: func(mi *MockIdentityRepository, mp *MockProfileRepository, mt *MockTokenStore) {
				mi.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "invalid credentials - wrong password",
			email:    "jamie@example.com",
			password: "WrongPass1!",
			setupMock: func(mi *MockIdentityRepository, mp *MockProfileRepository, mt *MockTokenStore) {
				mi.On("FindByEmail", mock.Anything, "jamie@example.com").Return(&model.Identity{
					ID:           userID,
					Email:        "jamie@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockIdentities := new(MockIdentityRepository)
			mockProfiles := new(MockProfileRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockIdentities, mockProfiles, mockTokenStore)

			service := NewAuthService(mockIdentities, mockProfiles, new(MockUploader), auth.NewJWTService("test-secret"), mockTokenStore)
			accessToken, refreshToken, profile, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.Equal(t, model.RoleDriver, profile.Role)
			}

			mockIdentities.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	userID := uuid.New()
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, "jamie@example.com")
	assert.NoError(t, err)

	mockProfiles := new(MockProfileRepository)
	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(userID, "jamie@example.com", nil)
	mockProfiles.On("FindByID", mock.Anything, userID).Return(&model.Profile{ID: userID, Role: model.RolePassenger}, nil)
	mockTokenStore.On("RoleVersion", mock.Anything, userID).Return(int64(2), nil)

	service := NewAuthService(new(MockIdentityRepository), mockProfiles, new(MockUploader), jwtService, mockTokenStore)

	accessToken, err := service.Refresh(context.Background(), refreshToken)
	assert.NoError(t, err)

	claims, err := jwtService.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, model.RolePassenger, claims.Role)
	assert.Equal(t, int64(2), claims.RoleVersion)

	mockTokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)
	assert.NoError(t, service.Logout(context.Background(), refreshToken))

	_, err = service.Refresh(context.Background(), "not-a-token")
	assert.Equal(t, ErrInvalidRefreshToken, err)

	mockTokenStore.AssertExpectations(t)
}
