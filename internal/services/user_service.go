package services

import (
	"context"
	"errors"
	"strings"

	"boutique-backend/internal/auth"
	"boutique-backend/internal/models"
	"boutique-backend/internal/repositories"
	"boutique-backend/internal/timeutil"
)

type UserService struct {
	Users   *repositories.UserRepository
	Systems *repositories.SystemRepository
}

func NewUserService(users *repositories.UserRepository, systems *repositories.SystemRepository) *UserService {
	return &UserService{Users: users, Systems: systems}
}

// AddUser creates a team member with a generated temporary password.
// The plain-text password is returned exactly once for the admin to
// hand over; only its hash is stored.
func (s *UserService) AddUser(ctx context.Context, systemID int, req *models.AddUserRequest) (*models.AddUserResponse, error) {
	if req.FirstName == "" || req.LastName == "" {
		return nil, errors.New("first name and last name are required")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, errors.New("a valid email address is required")
	}
	role := req.Role
	if role == "" {
		role = auth.RoleMember
	}
	if !auth.ValidRole(role) {
		return nil, errors.New("unknown role")
	}
	if existing, err := s.Users.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, errors.New("an account with this email already exists")
	}

	tempPassword, err := auth.GenerateTempPassword()
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPasscode(tempPassword)
	if err != nil {
		return nil, err
	}

	expiry := timeutil.Now().Add(TempPasswordExpiry)
	user := &models.User{
		SystemID:           systemID,
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		PasscodeHash:       hash,
		Role:               role,
		IsTempPassword:     true,
		TempPasswordExpiry: &expiry,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	return &models.AddUserResponse{User: user, TempPassword: tempPassword}, nil
}

// ResendTempPassword issues a fresh temporary password for a user who
// lost or outlived the previous one.
func (s *UserService) ResendTempPassword(ctx context.Context, systemID, userID int) (*models.AddUserResponse, error) {
	user, err := s.Users.Get(ctx, userID)
	if err != nil || user.SystemID != systemID {
		return nil, errors.New("user not found")
	}

	tempPassword, err := auth.GenerateTempPassword()
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPasscode(tempPassword)
	if err != nil {
		return nil, err
	}

	expiry := timeutil.Now().Add(TempPasswordExpiry)
	if err := s.Users.SetTempPasscode(ctx, user.ID, hash, expiry); err != nil {
		return nil, err
	}

	user.IsTempPassword = true
	user.TempPasswordExpiry = &expiry
	return &models.AddUserResponse{User: user, TempPassword: tempPassword}, nil
}

func (s *UserService) ListUsers(ctx context.Context, systemID int) ([]*models.User, error) {
	return s.Users.ListBySystem(ctx, systemID)
}

// RemoveUser deletes a team member. The system owner cannot be removed
// this way; deleting the whole system is a separate operation.
func (s *UserService) RemoveUser(ctx context.Context, systemID, userID, requesterID int) error {
	if userID == requesterID {
		return errors.New("use the delete-account operation to remove yourself")
	}

	user, err := s.Users.Get(ctx, userID)
	if err != nil || user.SystemID != systemID {
		// Idempotent: removing a missing user succeeds
		return nil
	}

	system, err := s.Systems.Get(ctx, systemID)
	if err == nil && system.OwnerID == userID {
		return errors.New("the system owner cannot be removed")
	}

	return s.Users.Delete(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if req.FirstName != "" {
		user.FirstName = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		user.LastName = strings.TrimSpace(req.LastName)
	}
	if req.Email != "" {
		if !emailPattern.MatchString(req.Email) {
			return nil, errors.New("a valid email address is required")
		}
		if existing, err := s.Users.GetByEmail(ctx, req.Email); err == nil && existing.ID != userID {
			return nil, errors.New("an account with this email already exists")
		}
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}

	if err := s.Users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return s.Users.Get(ctx, userID)
}

// DeleteOwnAccount removes the requesting user. The system owner must
// delete the whole system instead, so a tenant never ends up ownerless.
func (s *UserService) DeleteOwnAccount(ctx context.Context, systemID, userID int) error {
	system, err := s.Systems.Get(ctx, systemID)
	if err == nil && system.OwnerID == userID {
		return errors.New("the system owner must delete the system instead")
	}
	return s.Users.Delete(ctx, userID)
}

// DeleteSystem wipes the tenant and everything in it. Owner only.
func (s *UserService) DeleteSystem(ctx context.Context, systemID, requesterID int) error {
	system, err := s.Systems.Get(ctx, systemID)
	if err != nil {
		// Idempotent: a missing system counts as deleted
		return nil
	}
	if system.OwnerID != requesterID {
		return errors.New("only the system owner can delete the system")
	}
	return s.Systems.DeleteCascade(ctx, systemID)
}
