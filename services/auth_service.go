package services

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/repository"
	"backend/utils"

	"golang.org/x/crypto/bcrypt"
)

const otpTTL = 10 * time.Minute

// OTPMailer delivers the password-reset code. The SMTP sender implements it;
// tests plug in a recorder.
type OTPMailer interface {
	SendOTP(to, otp string) error
}

// AuthService handles login/register and the password flows.
type AuthService struct {
	uow       *repository.UnitOfWork
	mailer    OTPMailer
	audit     *AuditService
	clock     utils.Clock
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(uow *repository.UnitOfWork, mailer OTPMailer, audit *AuditService, clock utils.Clock, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		uow:       uow,
		mailer:    mailer,
		audit:     audit,
		clock:     clock,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

type LoginResult struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login verifies credentials and mints a JWT. Unknown users, wrong passwords
// and deactivated accounts all fail with the same message. The client address
// and agent go to the audit trail.
func (s *AuthService) Login(username, password, ip, userAgent string) (*LoginResult, error) {
	username = strings.TrimSpace(username)

	user, err := s.uow.Users.FindByUsername(username)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.Validation("invalid username or password")
		}
		return nil, apperr.Unexpected(err)
	}
	if !user.IsActive {
		return nil, apperr.Validation("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Validation("invalid username or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}

	uid := user.ID
	s.audit.RecordRequest(&uid, "login", "User", &uid, ip, userAgent)

	return &LoginResult{
		Token:     token,
		Username:  user.Username,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: s.clock.Now().Add(s.jwtTTL),
	}, nil
}

type RegisterReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
}

func validRole(role string) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleManager, entity.RoleWaiter, entity.RoleKitchen:
		return true
	}
	return false
}

func (s *AuthService) Register(req *RegisterReq) (*LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !utils.IsValidEmail(email) {
		return nil, apperr.Validation("invalid email address")
	}
	if !validRole(req.Role) {
		return nil, apperr.Validation("unknown role %q", req.Role)
	}

	count, err := s.uow.Users.CountByUsername(username)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if count > 0 {
		return nil, apperr.Conflict("username already exists")
	}
	count, err = s.uow.Users.CountByEmail(email)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if count > 0 {
		return nil, apperr.Conflict("email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}

	user := entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		FullName:     strings.TrimSpace(req.FullName),
		PhoneNumber:  utils.SanitizePhoneNumber(req.Phone),
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.uow.Users.Create(&user); err != nil {
		return nil, apperr.Unexpected(err)
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}

	return &LoginResult{
		Token:     token,
		Username:  user.Username,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: s.clock.Now().Add(s.jwtTTL),
	}, nil
}

func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.uow.Users.FindByID(userID)
	if err != nil {
		if isRecordNotFound(err) {
			return apperr.NotFound("user not found")
		}
		return apperr.Unexpected(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return apperr.Validation("invalid old password")
	}
	if len(newPassword) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Unexpected(err)
	}
	if err := s.uow.Users.UpdatePassword(userID, string(hashed)); err != nil {
		return apperr.Unexpected(err)
	}
	return nil
}

// ForgotPassword issues a 6-digit OTP valid for ten minutes and mails it.
// An unknown email gets the same success response so the endpoint cannot be
// used to probe accounts.
func (s *AuthService) ForgotPassword(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !utils.IsValidEmail(email) {
		return apperr.Validation("invalid email address")
	}

	user, err := s.uow.Users.FindByEmail(email)
	if err != nil {
		if isRecordNotFound(err) {
			slog.Info("password reset requested for unknown email")
			return nil
		}
		return apperr.Unexpected(err)
	}

	otp := fmt.Sprintf("%06d", rand.IntN(1000000))
	token := entity.PasswordResetToken{
		UserID:    user.ID,
		Token:     otp,
		ExpiresAt: s.clock.Now().Add(otpTTL),
	}
	if err := s.uow.Tokens.Create(&token); err != nil {
		return apperr.Unexpected(err)
	}

	if err := s.mailer.SendOTP(user.Email, otp); err != nil {
		return apperr.Unexpected(err)
	}
	return nil
}

func (s *AuthService) ResetPassword(email, otp, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(newPassword) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}

	user, err := s.uow.Users.FindByEmail(email)
	if err != nil {
		if isRecordNotFound(err) {
			return apperr.Validation("invalid or expired code")
		}
		return apperr.Unexpected(err)
	}

	token, err := s.uow.Tokens.FindValid(user.ID, otp, s.clock.Now())
	if err != nil {
		if isRecordNotFound(err) {
			return apperr.Validation("invalid or expired code")
		}
		return apperr.Unexpected(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Unexpected(err)
	}

	return s.uow.WithinTx(func(tx *repository.UnitOfWork) error {
		if err := tx.Users.UpdatePassword(user.ID, string(hashed)); err != nil {
			return apperr.Unexpected(err)
		}
		if err := tx.Tokens.MarkUsed(token.ID); err != nil {
			return apperr.Unexpected(err)
		}
		return nil
	})
}

func (s *AuthService) Profile(userID uint) (*entity.User, error) {
	user, err := s.uow.Users.FindByID(userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Unexpected(err)
	}
	return user, nil
}
