package usecase

import (
	"context"
	"strings"
	"time"

	"go-triagem-backend/internal/domain"
	"go-triagem-backend/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type authUsecase struct {
	userRepo  domain.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthUsecase(userRepo domain.UserRepository, jwtSecret string, tokenTTL time.Duration) domain.AuthUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Login resolves credentials to an active user row and issues an HS256
// session token. A valid password against an inactive row still fails: the
// account is treated as logged out the moment it is deactivated.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !user.Active {
		return nil, "", apperror.Unauthorized("User not found or inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperror.Unauthorized("Invalid credentials")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(u.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.jwtSecret)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	return user, token, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperror.Unauthorized("User not found or inactive")
	}
	return user, nil
}
