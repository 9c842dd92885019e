package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"servicehub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const otpLength = 6

var (
	phonePattern   = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	phoneSeparator = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
	userNamespace  = uuid.MustParse("6f1c1d52-8a1e-4b5e-9a53-2f0f4f3f7c11")
)

// NormalizePhone strips separators and validates the result.
func NormalizePhone(phone string) (string, error) {
	p := phoneSeparator.Replace(strings.TrimSpace(phone))
	if !phonePattern.MatchString(p) {
		return "", ErrInvalidPhone
	}
	return p, nil
}

// UserIDForPhone derives the stable user id of a phone number.
func UserIDForPhone(phone string) string {
	return uuid.NewSHA1(userNamespace, []byte(phone)).String()
}

func (s *DefaultAuthService) isDemo(phone string) bool {
	return s.opts.AllowDemo && s.opts.DemoPhone != "" && phone == s.opts.DemoPhone
}

// RequestOTP issues a fresh code for phone, replacing any pending one.
func (s *DefaultAuthService) RequestOTP(ctx context.Context, phone string) error {
	phone, err := NormalizePhone(phone)
	if err != nil {
		return err
	}
	if s.isDemo(phone) {
		s.logger.Debug("Demo phone requested OTP, nothing sent")
		return nil
	}

	code, err := utils.GenerateNumericOTP(otpLength)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash OTP: %w", err)
	}
	if err := s.store.Save(ctx, phone, string(hash), utils.OTPTTL); err != nil {
		return err
	}

	msg := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(utils.OTPTTL.Minutes()))
	if err := s.sendOTP(phone, msg); err != nil {
		return fmt.Errorf("failed to send OTP: %w", err)
	}
	return nil
}

// VerifyOTP checks code and, on success, consumes it and issues a token.
func (s *DefaultAuthService) VerifyOTP(ctx context.Context, phone, code string) (*Session, error) {
	phone, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidOTP
	}

	if s.isDemo(phone) {
		if code != s.opts.DemoOTP {
			return nil, ErrInvalidOTP
		}
		return s.session(phone)
	}

	hash, err := s.store.Get(ctx, phone)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidOTP
		}
		return nil, fmt.Errorf("failed to verify OTP: %w", err)
	}
	if err := s.store.Delete(ctx, phone); err != nil {
		s.logger.Warn("Failed to delete used OTP", zap.Error(err))
	}
	return s.session(phone)
}

func (s *DefaultAuthService) session(phone string) (*Session, error) {
	userID := UserIDForPhone(phone)
	token, err := s.issueToken(userID, phone, s.opts.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	s.logger.Info("User signed in", zap.String("userId", userID))
	return &Session{Token: token, UserID: userID, ExpiresAt: time.Now().Add(s.opts.TokenTTL)}, nil
}
