package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"gigbud/internal/config"
	"gigbud/internal/models"
	"gigbud/internal/repository"
	"gigbud/internal/token"
	"gigbud/internal/utils"
)

const minPasswordLength = 6

// AuthService implements registration, password and OTP login, Google
// federated login, token refresh and logout. Every collaborator arrives
// through the constructor.
type AuthService struct {
	userRepo      repository.UserRepository
	blacklistRepo repository.BlacklistRepository
	tokens        *token.Manager
	mailer        utils.Mailer
	google        GoogleVerifier
	otpTTL        time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	blacklistRepo repository.BlacklistRepository,
	tokens *token.Manager,
	mailer utils.Mailer,
	google GoogleVerifier,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		blacklistRepo: blacklistRepo,
		tokens:        tokens,
		mailer:        mailer,
		google:        google,
		otpTTL:        cfg.OTPTTL,
	}
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account and returns a token pair. Email uniqueness is
// enforced by the unique index, so two concurrent registrations for the same
// address yield exactly one success.
func (as *AuthService) Register(input RegisterInput) (*models.User, *token.Pair, error) {
	var violations []string
	if strings.TrimSpace(input.Name) == "" {
		violations = append(violations, "name is required")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		violations = append(violations, "email is not a valid address")
	}
	if len(input.Password) < minPasswordLength {
		violations = append(violations, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if err := NewValidationError(violations); err != nil {
		return nil, nil, err
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := as.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, fmt.Errorf("email already registered: %w", ErrConflict)
		}
		return nil, nil, err
	}

	pair, err := as.tokens.IssuePair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// PasswordLogin returns a token pair on success. Unknown email and wrong
// password are indistinguishable to the caller.
func (as *AuthService) PasswordLogin(email, password string) (*token.Pair, error) {
	user, err := as.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Password == "" || !utils.VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return as.tokens.IssuePair(user.ID, user.Email, user.Role)
}

// RequestLoginOTP stores a fresh 6-digit code on the user row, replacing any
// unconsumed one, and dispatches it by email.
func (as *AuthService) RequestLoginOTP(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := as.userRepo.FindByEmail(email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	code := utils.GenerateOTPCode()
	expiresAt := time.Now().Add(as.otpTTL)
	if err := as.userRepo.SetOTP(email, code, expiresAt); err != nil {
		return err
	}

	go func() {
		if err := as.mailer.Send(email, "Your GigBud login code", "Your login code is: "+code); err != nil {
			log.Printf("Failed to send OTP email to %s: %v", email, err)
		}
	}()
	return nil
}

// VerifyLoginOTP consumes the code and issues a token pair. The consume is a
// single conditional update, so a retried request cannot reuse a validated
// code.
func (as *AuthService) VerifyLoginOTP(email, code string) (*token.Pair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	consumed, err := as.userRepo.ConsumeOTP(email, code, time.Now())
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, ErrInvalidCredentials
	}

	user, err := as.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	return as.tokens.IssuePair(user.ID, user.Email, user.Role)
}

// GoogleLogin verifies the ID token, upserts the account, then routes
// through the OTP flow. Tokens are only issued by VerifyLoginOTP; the second
// factor is mandatory for federated identity too.
func (as *AuthService) GoogleLogin(ctx context.Context, idToken string) error {
	identity, err := as.google.Verify(ctx, idToken)
	if err != nil {
		return err
	}

	email := strings.ToLower(identity.Email)
	_, err = as.userRepo.FindByEmail(email)
	if errors.Is(err, repository.ErrNotFound) {
		user := &models.User{
			Name:          identity.Name,
			Email:         email,
			Role:          models.RoleUser,
			IsGoogleUser:  true,
			EmailVerified: true,
		}
		if createErr := as.userRepo.Create(user); createErr != nil {
			// Lost a create race; the account exists now, which is all
			// the OTP step needs.
			if !errors.Is(createErr, repository.ErrDuplicate) {
				return createErr
			}
		}
	} else if err != nil {
		return err
	}

	return as.RequestLoginOTP(email)
}

// RefreshAccessToken exchanges a valid refresh token for a new access token.
// The refresh token is not rotated.
func (as *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := as.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}
	user, err := as.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	return as.tokens.IssueAccess(user.ID, user.Email, user.Role)
}

// Logout blacklists the access token until its original expiry.
func (as *AuthService) Logout(accessToken string) error {
	claims, err := as.tokens.DecodeExpired(accessToken)
	if err != nil {
		return ErrInvalidToken
	}
	return as.blacklistRepo.Add(accessToken, claims.UserID, claims.ExpiresAt)
}

// VerifyEmail consumes the current OTP and marks the address verified.
func (as *AuthService) VerifyEmail(email, code string) error {
	return as.verifyContact(email, code, "email_verified")
}

// VerifyPhone consumes the current OTP and marks the phone verified.
func (as *AuthService) VerifyPhone(email, code string) error {
	return as.verifyContact(email, code, "phone_verified")
}

func (as *AuthService) verifyContact(email, code, column string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	consumed, err := as.userRepo.ConsumeOTP(email, code, time.Now())
	if err != nil {
		return err
	}
	if !consumed {
		return ErrInvalidCredentials
	}

	user, err := as.userRepo.FindByEmail(email)
	if err != nil {
		return err
	}
	return as.userRepo.Patch(user.ID, map[string]interface{}{column: true})
}
