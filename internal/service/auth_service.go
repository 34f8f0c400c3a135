package service

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/lshigami/examguard/internal/auth"
	"github.com/lshigami/examguard/internal/dto"
	"github.com/lshigami/examguard/internal/model"
	"github.com/lshigami/examguard/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*dto.LoginResponse, error)
	// Resolve turns a session token into the caller's current identity.
	Resolve(ctx context.Context, token string) (auth.Identity, error)
	CreateUser(ctx context.Context, username, password string, superuser bool) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Info().Str("username", username).Msg("Login: unknown user")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Info().Uint("userID", user.ID).Msg("Login: wrong password")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	log.Info().Uint("userID", user.ID).Bool("superuser", user.IsSuperuser).Msg("Login: session issued")
	return &dto.LoginResponse{
		Token:       token,
		UserID:      user.ID,
		Username:    user.Username,
		IsSuperuser: user.IsSuperuser,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *authService) Resolve(ctx context.Context, token string) (auth.Identity, error) {
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return auth.Identity{}, ErrNotAuthenticated
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.Identity{}, ErrNotAuthenticated
		}
		return auth.Identity{}, fmt.Errorf("load session user: %w", err)
	}
	return auth.Identity{UserID: user.ID, Username: user.Username, IsSuperuser: user.IsSuperuser}, nil
}

type newUserForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (f newUserForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required, validation.Length(1, 150)),
		validation.Field(&f.Password, validation.Required, validation.Length(6, 128)),
	)
}

func (s *authService) CreateUser(ctx context.Context, username, password string, superuser bool) (*model.User, error) {
	if err := (newUserForm{Username: username, Password: password}).Validate(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{Username: username, PasswordHash: string(hash), IsSuperuser: superuser}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}
	log.Info().Uint("userID", user.ID).Str("username", username).Bool("superuser", superuser).Msg("User created")
	return user, nil
}
