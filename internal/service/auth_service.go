package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"galleria/api/internal/apperr"
	"galleria/api/internal/config"
	"galleria/api/internal/ids"
	"galleria/api/internal/models"
	"galleria/api/internal/repository"
	"galleria/api/internal/security"
)

const (
	maxEmailLen    = 128
	minPasswordLen = 4
	maxPasswordLen = 64
)

type AuthService struct {
	owners OwnerGateway
	cfg    *config.AppConfig
	log    zerolog.Logger
}

func NewAuthService(owners OwnerGateway, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		owners: owners,
		cfg:    cfg,
		log:    log,
	}
}

type RegisterInput struct {
	Email           string
	Password        string
	PasswordConfirm string
}

type AuthResult struct {
	Token string
	Owner models.Owner
}

func validateEmail(email string) error {
	if email == "" {
		return apperr.Validation("email required")
	}
	if len(email) > maxEmailLen {
		return apperr.Validation(fmt.Sprintf("email must be at most %d characters", maxEmailLen))
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperr.Validation("invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return apperr.Validation(fmt.Sprintf("password must be %d to %d characters", minPasswordLen, maxPasswordLen))
	}
	for _, r := range password {
		if unicode.IsUpper(r) {
			return nil
		}
	}
	return apperr.Validation("password must contain at least one uppercase letter")
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if err := validateEmail(input.Email); err != nil {
		return AuthResult{}, err
	}
	if err := validatePassword(input.Password); err != nil {
		return AuthResult{}, err
	}
	if input.Password != input.PasswordConfirm {
		return AuthResult{}, apperr.Validation("passwords do not match")
	}

	if _, err := s.owners.FindByEmail(ctx, input.Email); err == nil {
		return AuthResult{}, apperr.DuplicateName("email already in use")
	} else if !errors.Is(err, repository.ErrOwnerNotFound) {
		return AuthResult{}, fmt.Errorf("check email: %w", err)
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	owner := models.Owner{
		ID:           ids.New(),
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	if err := s.owners.Create(ctx, owner); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return AuthResult{}, apperr.DuplicateName("email already in use")
		}
		return AuthResult{}, fmt.Errorf("create owner: %w", err)
	}

	token, err := security.GenerateOwnerToken(s.cfg.Security.JWTSecret, owner.ID, owner.Email, s.cfg.Security.JWTTTL)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Str("owner_id", owner.ID).Msg("owner registered")

	return AuthResult{Token: token, Owner: owner}, nil
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	owner, err := s.owners.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrOwnerNotFound) {
			return AuthResult{}, apperr.Unauthorized("invalid email or password")
		}
		return AuthResult{}, fmt.Errorf("find owner: %w", err)
	}

	ok, err := security.VerifyPassword(password, owner.PasswordHash)
	if err != nil || !ok {
		return AuthResult{}, apperr.Unauthorized("invalid email or password")
	}

	token, err := security.GenerateOwnerToken(s.cfg.Security.JWTSecret, owner.ID, owner.Email, s.cfg.Security.JWTTTL)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	return AuthResult{Token: token, Owner: owner}, nil
}
