package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/tetherchat/tether/internal/social/contact"
	"github.com/tetherchat/tether/internal/social/domain"
	"github.com/tetherchat/tether/internal/social/store"
	"github.com/tetherchat/tether/pkg/cryptox"
	"github.com/tetherchat/tether/pkg/idx"
	"github.com/tetherchat/tether/pkg/jwtx"
	"github.com/tetherchat/tether/pkg/slogx"
)

var (
	ErrInvalidUsername      = errors.New("invalid username")
	ErrInvalidPassword      = errors.New("password does not meet requirements")
	ErrUsernameAlreadyTaken = errors.New("username already taken")
	ErrContactAlreadyTaken  = errors.New("contact already linked to another account")
	ErrInvalidCredentials   = errors.New("invalid username or password")
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,32}$`)

const minPasswordLength = 8

// UserService handles accounts: registration, login sessions, profile
// lookups and contact channel changes.
type UserService struct {
	Store    store.Store
	Resolver *contact.Resolver
	Signer   jwtx.Signer

	// Issuer is stamped into session claims and checked on verification.
	Issuer string

	// SessionTTL for minted tokens; jwtx.DefaultSessionTTL when zero.
	SessionTTL time.Duration
}

// RegisterParams carries optional contact channels alongside credentials.
type RegisterParams struct {
	Username string
	Password string
	Email    string
	Phone    string
}

// Register creates an account. Contact channels are normalized but start
// unverified; verification is a separate flow.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate credentials.
	username := strings.TrimSpace(p.Username)
	if !usernameRe.MatchString(username) {
		return domain.User{}, ErrInvalidUsername
	}
	if len(p.Password) < minPasswordLength {
		return domain.User{}, ErrInvalidPassword
	}

	// 2. Normalize optional contacts.
	var email, phone string
	var err error
	if p.Email != "" {
		if email, err = contact.NormalizeEmail(p.Email); err != nil {
			return domain.User{}, err
		}
	}
	if p.Phone != "" {
		if phone, err = contact.NormalizePhone(p.Phone, s.Resolver.DefaultCountryCode); err != nil {
			return domain.User{}, err
		}
	}

	// 3. Hash and store.
	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		Phone:        phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameAlreadyTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("user registered",
		slog.String("user_id", u.ID),
		slog.String("username", u.Username),
	)
	return u, nil
}

// Login verifies credentials and mints a session token. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return "", domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return "", domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return "", domain.User{}, err
	}

	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	claims := jwtx.NewSessionClaims(u.ID, u.Username, s.Issuer, ttl, time.Now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return "", domain.User{}, err
	}

	log.Info("user logged in", slog.String("user_id", u.ID))
	return token, u, nil
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByUsername returns a user by handle.
func (s *UserService) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// Search finds users whose username contains the query, capped at limit.
func (s *UserService) Search(ctx context.Context, query string, limit int) ([]domain.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.Store.Users().SearchUsers(ctx, query, limit)
}

// UpdateContact changes a user's email or phone. The new value starts
// unverified, which also drops it from invite identity matching until the
// user re-verifies.
func (s *UserService) UpdateContact(ctx context.Context, userID string, channel domain.Channel, value string) error {
	log := slogx.FromContext(ctx)

	var normalized string
	var err error
	switch channel {
	case domain.ChannelEmail:
		normalized, err = contact.NormalizeEmail(value)
	case domain.ChannelPhone:
		normalized, err = contact.NormalizePhone(value, s.Resolver.DefaultCountryCode)
	default:
		return ErrInvalidRecipient
	}
	if err != nil {
		return err
	}

	if err := s.Store.Users().UpdateContact(ctx, userID, channel, normalized); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return ErrContactAlreadyTaken
		case errors.Is(err, store.ErrNotFound):
			return ErrUserNotFound
		}
		log.Error("failed to update contact", slog.Any("error", err))
		return err
	}

	log.Info("contact updated",
		slog.String("user_id", userID),
		slog.String("channel", string(channel)),
	)
	return nil
}
