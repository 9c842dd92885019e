package auth

import (
	"context"
	"errors"
	"time"

	"servicehub/utils"

	"go.uber.org/zap"
)

var (
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrInvalidOTP   = errors.New("invalid verification code")
	ErrOTPExpired   = errors.New("verification code expired or never requested")
)

// AuthService implements phone number sign-in with one-time codes.
type AuthService interface {
	RequestOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, code string) (*Session, error)
}

// Session is returned after a successful verification.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Options configures the OTP flow.
type Options struct {
	TokenTTL time.Duration
	// DemoPhone signs in with DemoOTP without sending a code when AllowDemo is set.
	DemoPhone string
	DemoOTP   string
	AllowDemo bool
}

type DefaultAuthService struct {
	store  OTPStore
	opts   Options
	logger *zap.Logger

	issueToken func(subject, phone string, ttl time.Duration) (string, error)
	sendOTP    func(phone, message string) error
}

func NewDefaultAuthService(store OTPStore, opts Options, logger *zap.Logger) *DefaultAuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 30 * 24 * time.Hour
	}
	return &DefaultAuthService{
		store:      store,
		opts:       opts,
		logger:     logger,
		issueToken: utils.GenerateToken,
		sendOTP:    utils.SendOTPMessage,
	}
}
