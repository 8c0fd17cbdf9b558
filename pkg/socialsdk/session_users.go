package socialsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Me returns the caller's own profile, including contact channels.
func (s *Session) Me(ctx context.Context) (User, error) {
	resp, err := s.client.doJSON(ctx, http.MethodGet, "/v1/users/me", s.token, nil)
	if err != nil {
		return User{}, err
	}
	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return User{}, err
	}
	return user, nil
}

// SearchUsers finds users by username substring.
func (s *Session) SearchUsers(ctx context.Context, query string, limit int) ([]User, error) {
	q := url.Values{"q": {query}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	resp, err := s.client.doJSON(ctx, http.MethodGet, "/v1/users/search?"+q.Encode(), s.token, nil)
	if err != nil {
		return nil, err
	}
	var sr SearchResponse
	if err := decodeJSON(resp, &sr, http.StatusOK); err != nil {
		return nil, err
	}
	return sr.Users, nil
}

// UpdateContact replaces the caller's email or phone.
func (s *Session) UpdateContact(ctx context.Context, channel, value string) error {
	resp, err := s.client.doJSON(ctx, http.MethodPut, "/v1/users/me/contact", s.token, UpdateContactRequest{
		Channel: channel,
		Value:   value,
	})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// StartVerification sends a verification code to the given channel.
func (s *Session) StartVerification(ctx context.Context, channel string) error {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/users/me/verify", s.token, VerifyStartRequest{
		Channel: channel,
	})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ConfirmVerification submits a verification code.
func (s *Session) ConfirmVerification(ctx context.Context, channel, code string) error {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/users/me/verify/confirm", s.token, VerifyConfirmRequest{
		Channel: channel,
		Code:    code,
	})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
