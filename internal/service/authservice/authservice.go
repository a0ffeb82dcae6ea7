package authservice

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/pkg/auth"
)

type Repo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByEmailFold(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type Service struct {
	userRepo    Repo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
}

func New(repo Repo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface) *Service {
	return &Service{
		userRepo:    repo,
		hashService: hashService,
		jwtService:  jwtService,
	}
}

const tokenTTL = 24 * time.Hour

// signupBonus seeds a new account so workers can show activity and buyers
// can post a first task.
func signupBonus(role domain.Role) int64 {
	switch role {
	case domain.RoleWorker:
		return 10
	case domain.RoleBuyer:
		return 50
	}
	return 0
}

func (s *Service) Register(ctx context.Context, email, name, password, role, photoURL string) (*domain.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if role == "" {
		role = string(domain.RoleWorker)
	}
	parsedRole, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	existing, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		zap.L().Info("user already exists", zap.String("email", email))
		return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if name == "" {
		name = "User"
	}
	user := &domain.User{
		Email:        email,
		Name:         name,
		PhotoURL:     photoURL,
		Role:         parsedRole,
		Coin:         signupBonus(parsedRole),
		PasswordHash: hashedPassword,
	}
	newUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		zap.L().Error("can't create user", zap.Error(err))
		return nil, err
	}

	zap.L().Info("user registered", zap.String("email", email), zap.String("role", string(parsedRole)))
	return newUser, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hashService.ComparePassword(user.PasswordHash, password) {
		zap.L().Info("invalid credentials", zap.String("email", email))
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
	}
	return user, nil
}

func (s *Service) GenerateToken(user *domain.User) (string, error) {
	token, err := s.jwtService.GenerateJWT(user.ID, user.Email, time.Now().Add(tokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	return token, nil
}

// ResolveUser maps a verified credential email to a user record. Which
// strategy decoded the credential is irrelevant here; no user means the
// request stays unauthenticated.
func (s *Service) ResolveUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		zap.L().Info("no user for credential", zap.String("email", email))
		return nil, fmt.Errorf("%w: user not found", domain.ErrUnauthenticated)
	}

	role, err := domain.ParseRole(string(user.Role))
	if err != nil {
		zap.L().Error("stored role is invalid", zap.String("email", user.Email), zap.Error(err))
		return nil, fmt.Errorf("%w: invalid role", domain.ErrUnauthenticated)
	}
	user.Role = role
	return user, nil
}

// findByEmail tries the exact match first, then the case-insensitive
// fallback. Emails are case-insensitive identifiers in this system.
func (s *Service) findByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	return s.userRepo.FindByEmailFold(ctx, email)
}
