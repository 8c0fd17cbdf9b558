package domain

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string

	// Contact channels. Optional; normalized (lowercase email, E.164 phone)
	// before storage. Verified timestamps gate invite acceptance matching.
	Email           string
	Phone           string
	EmailVerifiedAt *time.Time
	PhoneVerifiedAt *time.Time

	// OTPSecret backs contact-verification codes. Never exposed over the API.
	OTPSecret string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasVerifiedEmail reports whether addr is this user's verified email.
func (u User) HasVerifiedEmail(addr string) bool {
	return u.Email != "" && u.Email == addr && u.EmailVerifiedAt != nil
}

// HasVerifiedPhone reports whether number is this user's verified phone.
func (u User) HasVerifiedPhone(number string) bool {
	return u.Phone != "" && u.Phone == number && u.PhoneVerifiedAt != nil
}
