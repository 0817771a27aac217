package domain

import "time"

// Account lifecycle statuses. A user is created inactive and becomes active
// once the email OTP is verified. Blocked is terminal: no operation in this
// API transitions a user out of it.
const (
	StatusInactive = "inactive"
	StatusActive   = "active"
	StatusBlocked  = "blocked"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	UserID               string     `json:"id" dynamodbav:"user_id"`
	FullName             string     `json:"full_name" dynamodbav:"full_name"`
	Email                string     `json:"email" dynamodbav:"email"`
	PasswordHash         string     `json:"-" dynamodbav:"password_hash"`
	Role                 string     `json:"role" dynamodbav:"role"`
	Status               string     `json:"status" dynamodbav:"status"`
	Avatar               string     `json:"avatar,omitempty" dynamodbav:"avatar"`
	Bio                  string     `json:"bio,omitempty" dynamodbav:"bio"`
	Designation          string     `json:"designation,omitempty" dynamodbav:"designation"`
	EmailNotifications   bool       `json:"email_notifications" dynamodbav:"email_notifications"`
	PushNotifications    bool       `json:"push_notifications" dynamodbav:"push_notifications"`
	TwoFactorEnabled     bool       `json:"two_factor_enabled" dynamodbav:"two_factor_enabled"`
	OTP                  *string    `json:"-" dynamodbav:"otp"`
	OTPExpires           *time.Time `json:"-" dynamodbav:"otp_expires"`
	ResetPasswordToken   *string    `json:"-" dynamodbav:"reset_password_token"`
	ResetPasswordExpires *time.Time `json:"-" dynamodbav:"reset_password_expires"`
	CreatedAt            time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt            time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email              string `json:"email" validate:"required,email"`
	NewPassword        string `json:"newPassword" validate:"required,min=6,max=72"`
	ResetPasswordToken string `json:"resetPasswordToken" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

type UpdateProfileRequest struct {
	FullName    *string `json:"fullName" validate:"omitempty,max=100"`
	Bio         *string `json:"bio" validate:"omitempty,max=1000"`
	Designation *string `json:"designation" validate:"omitempty,max=100"`
}
