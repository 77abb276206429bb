package models

import "time"

type User struct {
	ID                 int        `json:"id"`
	SystemID           int        `json:"system_id"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	Email              string     `json:"email"`
	PasscodeHash       string     `json:"-"`
	Role               string     `json:"role"`
	IsTempPassword     bool       `json:"is_temp_password"`
	TempPasswordExpiry *time.Time `json:"temp_password_expiry,omitempty"`
	LastLogin          *time.Time `json:"last_login,omitempty"`
	TOTPEnabled        bool       `json:"totp_enabled"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// System is one tenant of the application, created when the first
// admin registers.
type System struct {
	ID        int       `json:"id"`
	OwnerID   int       `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterAdminRequest creates the initial admin user plus its system.
type RegisterAdminRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Passcode  string `json:"passcode"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Passcode string `json:"passcode"`
	TOTPCode string `json:"totp_code,omitempty"`
}

// QuickLoginRequest is the passcode-only login used when a session was
// recently active on the same device.
type QuickLoginRequest struct {
	Passcode string `json:"passcode"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type AddUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// AddUserResponse carries the generated temporary password back to the
// admin exactly once; it is never stored in plain text.
type AddUserResponse struct {
	User         *User  `json:"user"`
	TempPassword string `json:"temp_password"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// SetupTOTPResponse carries the pending secret and the otpauth URL to
// scan; the secret is only stored once ConfirmTOTP sees a valid code.
type SetupTOTPResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

type ConfirmTOTPRequest struct {
	Secret string `json:"secret"`
	Code   string `json:"code"`
}

type ChangePasscodeRequest struct {
	CurrentPasscode string `json:"current_passcode"`
	NewPasscode     string `json:"new_passcode"`
}

type ResetPasscodeRequest struct {
	Email       string `json:"email"`
	NewPasscode string `json:"new_passcode"`
}
