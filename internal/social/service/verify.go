package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/tetherchat/tether/internal/social/domain"
	"github.com/tetherchat/tether/internal/social/store"
	"github.com/tetherchat/tether/pkg/slogx"
)

var (
	ErrNoContactOnFile = errors.New("no contact on file for that channel")
	ErrInvalidCode     = errors.New("invalid verification code")
)

const (
	verifyDigits = otp.DigitsEight
	verifyPeriod = 10 * time.Minute
	verifySkew   = 1
)

// VerificationService proves contact channel ownership. Codes are TOTP
// values derived from a per-user secret, so nothing short-lived needs to be
// stored: a code is valid for its period (plus one step of skew) and
// self-expires.
type VerificationService struct {
	Store      store.Store
	Dispatcher *NotificationDispatcher

	// Issuer appears in the otp URL; cosmetic only for this flow.
	Issuer string
}

// Start sends a verification code to the user's email or phone.
func (s *VerificationService) Start(ctx context.Context, userID string, channel domain.Channel) error {
	log := slogx.FromContext(ctx)

	u, target, err := s.contactFor(ctx, userID, channel)
	if err != nil {
		return err
	}

	// Lazily provision the per-user secret.
	if u.OTPSecret == "" {
		key, err := totp.Generate(totp.GenerateOpts{
			Issuer:      s.Issuer,
			AccountName: u.Username,
			Period:      uint(verifyPeriod.Seconds()),
			Digits:      verifyDigits,
		})
		if err != nil {
			log.Error("failed to generate otp secret", slog.Any("error", err))
			return err
		}
		u.OTPSecret = key.Secret()
		if err := s.Store.Users().SetOTPSecret(ctx, userID, u.OTPSecret); err != nil {
			log.Error("failed to store otp secret", slog.Any("error", err))
			return err
		}
	}

	code, err := totp.GenerateCodeCustom(u.OTPSecret, time.Now(), totp.ValidateOpts{
		Period: uint(verifyPeriod.Seconds()),
		Skew:   verifySkew,
		Digits: verifyDigits,
	})
	if err != nil {
		log.Error("failed to generate verification code", slog.Any("error", err))
		return err
	}

	method := domain.DeliveryEmail
	if channel == domain.ChannelPhone {
		method = domain.DeliverySMS
	}
	_, err = s.Dispatcher.Dispatch(ctx, domain.Notification{
		UserID:  userID,
		Type:    domain.NotificationVerification,
		Title:   "Verify your contact",
		Message: fmt.Sprintf("Your verification code is %s", code),
		Method:  method,
		Target:  target,
	})
	if err != nil {
		return err
	}

	log.Info("verification started",
		slog.String("user_id", userID),
		slog.String("channel", string(channel)),
	)
	return nil
}

// Confirm checks a code and, when valid, marks the channel verified.
func (s *VerificationService) Confirm(ctx context.Context, userID string, channel domain.Channel, code string) error {
	log := slogx.FromContext(ctx)

	u, _, err := s.contactFor(ctx, userID, channel)
	if err != nil {
		return err
	}
	if u.OTPSecret == "" {
		return ErrInvalidCode
	}

	ok, err := totp.ValidateCustom(code, u.OTPSecret, time.Now(), totp.ValidateOpts{
		Period: uint(verifyPeriod.Seconds()),
		Skew:   verifySkew,
		Digits: verifyDigits,
	})
	if err != nil || !ok {
		return ErrInvalidCode
	}

	if err := s.Store.Users().MarkContactVerified(ctx, userID, channel, time.Now().UTC()); err != nil {
		log.Error("failed to mark contact verified", slog.Any("error", err))
		return err
	}

	log.Info("contact verified",
		slog.String("user_id", userID),
		slog.String("channel", string(channel)),
	)
	return nil
}

// contactFor loads the user and resolves the channel's current value.
func (s *VerificationService) contactFor(ctx context.Context, userID string, channel domain.Channel) (domain.User, string, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrUserNotFound
		}
		return domain.User{}, "", err
	}

	var target string
	switch channel {
	case domain.ChannelEmail:
		target = u.Email
	case domain.ChannelPhone:
		target = u.Phone
	default:
		return domain.User{}, "", ErrInvalidRecipient
	}
	if target == "" {
		return domain.User{}, "", ErrNoContactOnFile
	}
	return u, target, nil
}
