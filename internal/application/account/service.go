package account

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/abdussamadse/todo-server/internal/domain"
	"github.com/abdussamadse/todo-server/internal/pkg/id"
	pkgtoken "github.com/abdussamadse/todo-server/internal/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldPasswordHash         = "password_hash"
	fieldStatus               = "status"
	fieldOTP                  = "otp"
	fieldOTPExpires           = "otp_expires"
	fieldResetPasswordToken   = "reset_password_token"
	fieldResetPasswordExpires = "reset_password_expires"
)

const (
	otpTTL        = 5 * time.Minute
	resetTokenTTL = 5 * time.Minute
	// A fresh OTP cannot be requested while the previous one is younger than this.
	otpReissueCooldown = time.Minute
)

// Service is the account lifecycle state machine. It owns the status,
// otp/otpExpires and resetPasswordToken/resetPasswordExpires fields of the
// user record and every transition among them.
type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	IssueOTP(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, email, otp string) (userID string, err error)
	VerifyResetOTP(ctx context.Context, email, otp string) (resetToken string, err error)
	ResetPassword(ctx context.Context, email, newPassword, resetToken string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type service struct {
	repo   userStore
	mailer mailer
}

func NewService(repo userStore, m mailer) Service {
	return &service{repo: repo, mailer: m}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already exists: %w", domain.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:             id.New(),
		FullName:           req.FullName,
		Email:              email,
		PasswordHash:       string(hash),
		Role:               domain.RoleUser,
		Status:             domain.StatusInactive,
		EmailNotifications: true,
		PushNotifications:  true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	// OTP issuance is a side effect of registration; the account stays
	// inactive until the code is verified.
	if err := s.issueOTP(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// IssueOTP generates a fresh 4-digit code for the user behind email, persists
// it with its expiry, and dispatches it by mail. Serves registration, explicit
// resend, and the forgot-password flow alike.
func (s *service) IssueOTP(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return s.issueOTP(ctx, u)
}

func (s *service) issueOTP(ctx context.Context, u *domain.User) error {
	// Refuse a reissue while the previous code is younger than the cooldown.
	// The issue time is recovered from the stored expiry.
	if u.OTPExpires != nil {
		issuedAt := u.OTPExpires.Add(-otpTTL)
		if time.Since(issuedAt) < otpReissueCooldown {
			return fmt.Errorf("an OTP was sent recently, try again later: %w", domain.ErrConflict)
		}
	}
	otp, err := newOTP()
	if err != nil {
		return err
	}
	expires := time.Now().UTC().Add(otpTTL)
	// Persist before sending: a failed dispatch must not leave the stored
	// state behind what the user was promised, and resend always works.
	if err := s.repo.Update(ctx, u.UserID, map[string]interface{}{
		fieldOTP:        otp,
		fieldOTPExpires: expires,
	}); err != nil {
		return err
	}
	body := fmt.Sprintf("Here is your OTP: %s for email verification. It expires in 5 minutes.", otp)
	if err := s.mailer.SendEmail(u.Email, "Email Verification", body); err != nil {
		slog.Warn("failed to send OTP email", "user_id", u.UserID, "err", err)
	}
	return nil
}

// VerifyEmail consumes the pending OTP and activates the account.
// The transition is one-shot: the code is cleared on success, so replaying
// the same (email, otp) pair fails.
func (s *service) VerifyEmail(ctx context.Context, email, otp string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if err := checkOTP(u, otp); err != nil {
		return "", err
	}
	if err := s.repo.Update(ctx, u.UserID, map[string]interface{}{
		fieldStatus:     domain.StatusActive,
		fieldOTP:        nil,
		fieldOTPExpires: nil,
	}); err != nil {
		return "", err
	}
	return u.UserID, nil
}

// VerifyResetOTP consumes the pending OTP and issues a reset capability token.
// Only the token's digest is persisted; the raw value is returned to the
// caller and must be presented to ResetPassword.
func (s *service) VerifyResetOTP(ctx context.Context, email, otp string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if err := checkOTP(u, otp); err != nil {
		return "", err
	}
	raw, digest, err := pkgtoken.NewResetToken()
	if err != nil {
		return "", err
	}
	if err := s.repo.Update(ctx, u.UserID, map[string]interface{}{
		fieldResetPasswordToken:   digest,
		fieldResetPasswordExpires: time.Now().UTC().Add(resetTokenTTL),
		fieldOTP:                  nil,
		fieldOTPExpires:           nil,
	}); err != nil {
		return "", err
	}
	return raw, nil
}

// ResetPassword redeems the reset token issued by VerifyResetOTP. The token
// is single-use: it is cleared together with its expiry on success.
func (s *service) ResetPassword(ctx context.Context, email, newPassword, resetToken string) error {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if u.ResetPasswordToken == nil || u.ResetPasswordExpires == nil {
		return fmt.Errorf("invalid or expired reset token: %w", domain.ErrInvalidOrExpired)
	}
	digest := pkgtoken.Digest(resetToken)
	if subtle.ConstantTimeCompare([]byte(*u.ResetPasswordToken), []byte(digest)) != 1 {
		return fmt.Errorf("invalid or expired reset token: %w", domain.ErrInvalidOrExpired)
	}
	if !time.Now().Before(*u.ResetPasswordExpires) {
		return fmt.Errorf("invalid or expired reset token: %w", domain.ErrInvalidOrExpired)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(newPassword)) == nil {
		return fmt.Errorf("new password cannot be the same as the old password: %w", domain.ErrSamePassword)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, u.UserID, map[string]interface{}{
		fieldPasswordHash:         string(hash),
		fieldResetPasswordToken:   nil,
		fieldResetPasswordExpires: nil,
	})
}

// ChangePassword is the authenticated variant: no OTP or token, just the
// current password for the session's own user.
func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrUnauthorized)
	}
	if currentPassword == newPassword {
		return fmt.Errorf("new password cannot be the same as the old password: %w", domain.ErrSamePassword)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, userID, map[string]interface{}{fieldPasswordHash: string(hash)})
}

// checkOTP applies the shared OTP contract: a stored code must exist, match
// the supplied value exactly, and not be at or past its expiry.
func checkOTP(u *domain.User, otp string) error {
	if u.OTP == nil || u.OTPExpires == nil {
		return fmt.Errorf("invalid or expired OTP: %w", domain.ErrInvalidOrExpired)
	}
	if subtle.ConstantTimeCompare([]byte(*u.OTP), []byte(otp)) != 1 {
		return fmt.Errorf("invalid or expired OTP: %w", domain.ErrInvalidOrExpired)
	}
	if !time.Now().Before(*u.OTPExpires) {
		return fmt.Errorf("invalid or expired OTP: %w", domain.ErrInvalidOrExpired)
	}
	return nil
}

func newOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
