package authservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/pkg/auth"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *auth.MockHashServiceInterface, *auth.MockJWTServiceInterface) {
	ctrl := gomock.NewController(t)
	userRepo := NewMockRepo(ctrl)
	hashService := auth.NewMockHashServiceInterface(ctrl)
	jwtService := auth.NewMockJWTServiceInterface(ctrl)
	service := New(userRepo, hashService, jwtService)
	defer ctrl.Finish()
	return service, userRepo, hashService, jwtService
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		role          string
		prepareMock   func(userRepo *MockRepo, hashService *auth.MockHashServiceInterface)
		expectedCoin  int64
		expectedRole  domain.Role
		expectedError error
	}{
		{
			name:  "Worker gets the signup bonus",
			email: "worker@example.com",
			role:  "worker",
			prepareMock: func(userRepo *MockRepo, hashService *auth.MockHashServiceInterface) {
				userRepo.EXPECT().FindByEmail(gomock.Any(), "worker@example.com").Return(nil, nil)
				userRepo.EXPECT().FindByEmailFold(gomock.Any(), "worker@example.com").Return(nil, nil)
				hashService.EXPECT().HashPassword("password").Return("hashed", nil)
				userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, user *domain.User) (*domain.User, error) {
						user.ID = 1
						return user, nil
					})
			},
			expectedCoin: 10,
			expectedRole: domain.RoleWorker,
		},
		{
			name:  "Buyer gets the bigger bonus",
			email: "buyer@example.com",
			role:  "buyer",
			prepareMock: func(userRepo *MockRepo, hashService *auth.MockHashServiceInterface) {
				userRepo.EXPECT().FindByEmail(gomock.Any(), "buyer@example.com").Return(nil, nil)
				userRepo.EXPECT().FindByEmailFold(gomock.Any(), "buyer@example.com").Return(nil, nil)
				hashService.EXPECT().HashPassword("password").Return("hashed", nil)
				userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, user *domain.User) (*domain.User, error) {
						user.ID = 2
						return user, nil
					})
			},
			expectedCoin: 50,
			expectedRole: domain.RoleBuyer,
		},
		{
			name:  "Empty role defaults to worker",
			email: "worker2@example.com",
			role:  "",
			prepareMock: func(userRepo *MockRepo, hashService *auth.MockHashServiceInterface) {
				userRepo.EXPECT().FindByEmail(gomock.Any(), "worker2@example.com").Return(nil, nil)
				userRepo.EXPECT().FindByEmailFold(gomock.Any(), "worker2@example.com").Return(nil, nil)
				hashService.EXPECT().HashPassword("password").Return("hashed", nil)
				userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, user *domain.User) (*domain.User, error) {
						user.ID = 3
						return user, nil
					})
			},
			expectedCoin: 10,
			expectedRole: domain.RoleWorker,
		},
		{
			name:          "Unknown role rejected",
			email:         "x@example.com",
			role:          "superuser",
			prepareMock:   func(userRepo *MockRepo, hashService *auth.MockHashServiceInterface) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:  "Duplicate email",
			email: "taken@example.com",
			role:  "worker",
			prepareMock: func(userRepo *MockRepo, hashService *auth.MockHashServiceInterface) {
				userRepo.EXPECT().FindByEmail(gomock.Any(), "taken@example.com").
					Return(&domain.User{Email: "taken@example.com"}, nil)
			},
			expectedError: domain.ErrConflict,
		},
		{
			name:          "Missing email",
			email:         "",
			role:          "worker",
			prepareMock:   func(userRepo *MockRepo, hashService *auth.MockHashServiceInterface) {},
			expectedError: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo, hashService, _ := NewMock(t)
			tt.prepareMock(userRepo, hashService)

			user, err := service.Register(context.Background(), tt.email, "", "password", tt.role, "")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCoin, user.Coin)
				assert.Equal(t, tt.expectedRole, user.Role)
				assert.Equal(t, "User", user.Name)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	stored := &domain.User{ID: 1, Email: "worker@example.com", PasswordHash: "hashed", Role: domain.RoleWorker}

	tests := []struct {
		name          string
		prepareMock   func(userRepo *MockRepo, hashService *auth.MockHashServiceInterface)
		expectedError error
	}{
		{
			name: "Valid credentials",
			prepareMock: func(userRepo *MockRepo, hashService *auth.MockHashServiceInterface) {
				userRepo.EXPECT().FindByEmail(gomock.Any(), "worker@example.com").Return(stored, nil)
				hashService.EXPECT().ComparePassword("hashed", "password").Return(true)
			},
		},
		{
			name: "Wrong password",
			prepareMock: func(userRepo *MockRepo, hashService *auth.MockHashServiceInterface) {
				userRepo.EXPECT().FindByEmail(gomock.Any(), "worker@example.com").Return(stored, nil)
				hashService.EXPECT().ComparePassword("hashed", "password").Return(false)
			},
			expectedError: domain.ErrUnauthenticated,
		},
		{
			name: "Unknown user",
			prepareMock: func(userRepo *MockRepo, hashService *auth.MockHashServiceInterface) {
				userRepo.EXPECT().FindByEmail(gomock.Any(), "worker@example.com").Return(nil, nil)
				userRepo.EXPECT().FindByEmailFold(gomock.Any(), "worker@example.com").Return(nil, nil)
			},
			expectedError: domain.ErrUnauthenticated,
		},
		{
			name: "Store error",
			prepareMock: func(userRepo *MockRepo, hashService *auth.MockHashServiceInterface) {
				userRepo.EXPECT().FindByEmail(gomock.Any(), "worker@example.com").Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo, hashService, _ := NewMock(t)
			tt.prepareMock(userRepo, hashService)

			user, err := service.Authenticate(context.Background(), "worker@example.com", "password")
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, user.ID)
			}
		})
	}
}

func TestResolveUser(t *testing.T) {
	tests := []struct {
		name          string
		prepareMock   func(userRepo *MockRepo)
		expectedError error
	}{
		{
			name: "Exact match",
			prepareMock: func(userRepo *MockRepo) {
				userRepo.EXPECT().FindByEmail(gomock.Any(), "Worker@Example.com").
					Return(&domain.User{ID: 1, Email: "Worker@Example.com", Role: domain.RoleWorker}, nil)
			},
		},
		{
			name: "Case-insensitive fallback",
			prepareMock: func(userRepo *MockRepo) {
				userRepo.EXPECT().FindByEmail(gomock.Any(), "Worker@Example.com").Return(nil, nil)
				userRepo.EXPECT().FindByEmailFold(gomock.Any(), "Worker@Example.com").
					Return(&domain.User{ID: 1, Email: "worker@example.com", Role: domain.RoleWorker}, nil)
			},
		},
		{
			name: "No user stays unauthenticated",
			prepareMock: func(userRepo *MockRepo) {
				userRepo.EXPECT().FindByEmail(gomock.Any(), "Worker@Example.com").Return(nil, nil)
				userRepo.EXPECT().FindByEmailFold(gomock.Any(), "Worker@Example.com").Return(nil, nil)
			},
			expectedError: domain.ErrUnauthenticated,
		},
		{
			name: "Stored role outside the closed set",
			prepareMock: func(userRepo *MockRepo) {
				userRepo.EXPECT().FindByEmail(gomock.Any(), "Worker@Example.com").
					Return(&domain.User{ID: 1, Email: "worker@example.com", Role: "root"}, nil)
			},
			expectedError: domain.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo, _, _ := NewMock(t)
			tt.prepareMock(userRepo)

			user, err := service.ResolveUser(context.Background(), "Worker@Example.com")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.RoleWorker, user.Role)
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	service, _, _, jwtService := NewMock(t)

	jwtService.EXPECT().
		GenerateJWT(1, "worker@example.com", gomock.Any()).
		Return("token", nil)

	token, err := service.GenerateToken(&domain.User{ID: 1, Email: "worker@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, "token", token)
}
