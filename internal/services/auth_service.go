package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"boutique-backend/internal/auth"
	"boutique-backend/internal/models"
	"boutique-backend/internal/repositories"
	"boutique-backend/internal/timeutil"

	"github.com/pquerna/otp/totp"
)

type AuthService struct {
	Users   *repositories.UserRepository
	Systems *repositories.SystemRepository
}

func NewAuthService(users *repositories.UserRepository, systems *repositories.SystemRepository) *AuthService {
	return &AuthService{Users: users, Systems: systems}
}

func (s *AuthService) Initialized(ctx context.Context) (bool, error) {
	return s.Systems.Initialized(ctx)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID int) (*models.User, error) {
	return s.Users.Get(ctx, userID)
}

// RegisterAdmin creates a new tenant: the system row plus its owning
// admin user.
func (s *AuthService) RegisterAdmin(ctx context.Context, req *models.RegisterAdminRequest) (*models.User, error) {
	if req.FirstName == "" || req.LastName == "" {
		return nil, errors.New("first name and last name are required")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, errors.New("a valid email address is required")
	}
	if len(req.Passcode) < auth.MinPasscodeLength {
		return nil, fmt.Errorf("passcode must be at least %d characters", auth.MinPasscodeLength)
	}
	if existing, err := s.Users.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, errors.New("an account with this email already exists")
	}

	hash, err := auth.HashPasscode(req.Passcode)
	if err != nil {
		return nil, err
	}

	system := &models.System{}
	if err := s.Systems.Create(ctx, system); err != nil {
		return nil, err
	}

	user := &models.User{
		SystemID:     system.ID,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasscodeHash: hash,
		Role:         auth.RoleAdmin,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.Systems.SetOwner(ctx, system.ID, user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials. Accounts on a temporary password must
// use it before it expires; accounts with TOTP enabled must supply a
// valid code.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	user, err := s.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or passcode")
	}

	if user.IsTempPassword && user.TempPasswordExpiry != nil && timeutil.Now().After(*user.TempPasswordExpiry) {
		return nil, errors.New("temporary password has expired, ask an admin for a new one")
	}

	if !auth.VerifyPasscode(user.PasscodeHash, req.Passcode) {
		return nil, errors.New("invalid email or passcode")
	}

	if user.TOTPEnabled {
		secret, err := s.Users.GetTOTPSecret(ctx, user.ID)
		if err != nil || secret == "" {
			return nil, errors.New("two-factor verification unavailable")
		}
		if !totp.Validate(req.TOTPCode, secret) {
			return nil, errors.New("invalid verification code")
		}
	}

	_ = s.Users.UpdateLastLogin(ctx, user.ID)
	return user, nil
}

// QuickLogin re-authenticates a known user with just the passcode. The
// caller identifies the user from the previous session cookie, expired
// or not.
func (s *AuthService) QuickLogin(ctx context.Context, userID int, passcode string) (*models.User, error) {
	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return nil, errors.New("no previous session for quick login")
	}

	if !auth.VerifyPasscode(user.PasscodeHash, passcode) {
		return nil, errors.New("invalid passcode")
	}

	_ = s.Users.UpdateLastLogin(ctx, user.ID)
	return user, nil
}

// ChangePasscode sets a new passcode after verifying the current one.
// This is also how temp-password accounts claim themselves.
func (s *AuthService) ChangePasscode(ctx context.Context, userID int, req *models.ChangePasscodeRequest) error {
	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return errors.New("user not found")
	}
	if !auth.VerifyPasscode(user.PasscodeHash, req.CurrentPasscode) {
		return errors.New("current passcode is incorrect")
	}
	if len(req.NewPasscode) < auth.MinPasscodeLength {
		return fmt.Errorf("passcode must be at least %d characters", auth.MinPasscodeLength)
	}

	hash, err := auth.HashPasscode(req.NewPasscode)
	if err != nil {
		return err
	}
	return s.Users.UpdatePasscode(ctx, user.ID, hash)
}

// ResetPasscode replaces a forgotten passcode for a matching email.
func (s *AuthService) ResetPasscode(ctx context.Context, req *models.ResetPasscodeRequest) error {
	user, err := s.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		return errors.New("no account with this email")
	}
	if len(req.NewPasscode) < auth.MinPasscodeLength {
		return fmt.Errorf("passcode must be at least %d characters", auth.MinPasscodeLength)
	}

	hash, err := auth.HashPasscode(req.NewPasscode)
	if err != nil {
		return err
	}
	return s.Users.UpdatePasscode(ctx, user.ID, hash)
}

// SetupTOTP generates a new TOTP secret and returns the otpauth URL for
// the authenticator app. The secret is stored once ConfirmTOTP sees a
// valid code.
func (s *AuthService) SetupTOTP(ctx context.Context, userID int) (secret, url string, err error) {
	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return "", "", errors.New("user not found")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Boutique",
		AccountName: user.Email,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// ConfirmTOTP verifies the first code against the pending secret and
// enables two-factor login.
func (s *AuthService) ConfirmTOTP(ctx context.Context, userID int, secret, code string) error {
	if !totp.Validate(code, secret) {
		return errors.New("invalid verification code")
	}
	return s.Users.SetTOTPSecret(ctx, userID, secret)
}

// DisableTOTP turns two-factor login off.
func (s *AuthService) DisableTOTP(ctx context.Context, userID int) error {
	return s.Users.SetTOTPSecret(ctx, userID, "")
}

// TempPasswordExpiry is how long a generated temporary password stays
// usable.
const TempPasswordExpiry = 48 * time.Hour
