// Package contact normalizes and resolves the identities an invite or a
// notification can be addressed to: usernames, email addresses and phone
// numbers.
package contact

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/tetherchat/tether/internal/social/domain"
	"github.com/tetherchat/tether/internal/social/store"
)

var (
	ErrInvalidEmail    = errors.New("contact: invalid email address")
	ErrInvalidPhone    = errors.New("contact: invalid phone number")
	ErrInvalidUsername = errors.New("contact: invalid username")
	ErrUnknownUser     = errors.New("contact: unknown user")
)

var (
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe    = regexp.MustCompile(`^\+[1-9][0-9]{9,14}$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,32}$`)

	phoneStrip = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
)

// Resolver turns raw recipient input into normalized domain.Recipient
// values. Username recipients must exist; email and phone recipients are
// accepted whether or not a matching account exists yet.
type Resolver struct {
	Users store.Users

	// DefaultCountryCode (e.g. "+61") is prepended to national-format
	// phone numbers that arrive without one.
	DefaultCountryCode string
}

// Resolve normalizes value on the given channel. An empty channel is
// auto-detected: anything with an "@" is an email, a leading "+" or an
// all-digit string is a phone number, everything else a username.
func (r *Resolver) Resolve(ctx context.Context, channel domain.Channel, value string) (domain.Recipient, error) {
	value = strings.TrimSpace(value)
	if channel == "" {
		channel = DetectChannel(value)
	}

	switch channel {
	case domain.ChannelUsername:
		return r.resolveUsername(ctx, value)
	case domain.ChannelEmail:
		addr, err := NormalizeEmail(value)
		if err != nil {
			return domain.Recipient{}, err
		}
		return domain.EmailRecipient(addr), nil
	case domain.ChannelPhone:
		number, err := NormalizePhone(value, r.DefaultCountryCode)
		if err != nil {
			return domain.Recipient{}, err
		}
		return domain.PhoneRecipient(number), nil
	default:
		return domain.Recipient{}, ErrInvalidUsername
	}
}

func (r *Resolver) resolveUsername(ctx context.Context, username string) (domain.Recipient, error) {
	if !usernameRe.MatchString(username) {
		return domain.Recipient{}, ErrInvalidUsername
	}
	u, err := r.Users.GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Recipient{}, ErrUnknownUser
	}
	if err != nil {
		return domain.Recipient{}, err
	}
	return domain.UsernameRecipient(u.ID, u.Username), nil
}

// Identities returns every normalized value a user can be addressed by:
// their username and any verified contact channels. Used to match open
// invites against the caller.
func Identities(u domain.User) []string {
	ids := []string{u.Username}
	if u.EmailVerifiedAt != nil && u.Email != "" {
		ids = append(ids, u.Email)
	}
	if u.PhoneVerifiedAt != nil && u.Phone != "" {
		ids = append(ids, u.Phone)
	}
	return ids
}

// DetectChannel guesses the channel for a raw recipient value.
func DetectChannel(value string) domain.Channel {
	if strings.Contains(value, "@") {
		return domain.ChannelEmail
	}
	stripped := phoneStrip.Replace(value)
	if strings.HasPrefix(stripped, "+") || isDigits(stripped) {
		return domain.ChannelPhone
	}
	return domain.ChannelUsername
}

// NormalizeEmail lowercases and validates an email address.
func NormalizeEmail(addr string) (string, error) {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if !emailRe.MatchString(addr) {
		return "", ErrInvalidEmail
	}
	return addr, nil
}

// NormalizePhone strips separators, applies the default country code to
// national-format numbers, and validates the E.164 result.
func NormalizePhone(number, defaultCountryCode string) (string, error) {
	number = phoneStrip.Replace(strings.TrimSpace(number))

	if !strings.HasPrefix(number, "+") {
		// National numbers often carry a leading trunk zero. "0400 123 456"
		// becomes "+61400123456" with an Australian default code.
		trimmed := strings.TrimPrefix(number, "0")
		if defaultCountryCode == "" || !isDigits(trimmed) {
			return "", ErrInvalidPhone
		}
		number = defaultCountryCode + trimmed
	}

	if !phoneRe.MatchString(number) {
		return "", ErrInvalidPhone
	}
	return number, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
