package socialsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Notifications lists the caller's feed, newest first.
func (s *Session) Notifications(ctx context.Context, unreadOnly bool, limit int) ([]Notification, error) {
	q := url.Values{}
	if unreadOnly {
		q.Set("unread", "true")
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/v1/notifications"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := s.client.doJSON(ctx, http.MethodGet, path, s.token, nil)
	if err != nil {
		return nil, err
	}
	var nr NotificationsResponse
	if err := decodeJSON(resp, &nr, http.StatusOK); err != nil {
		return nil, err
	}
	return nr.Notifications, nil
}

// UnreadCount returns the unread badge count.
func (s *Session) UnreadCount(ctx context.Context) (int, error) {
	resp, err := s.client.doJSON(ctx, http.MethodGet, "/v1/notifications/unread_count", s.token, nil)
	if err != nil {
		return 0, err
	}
	var ur UnreadCountResponse
	if err := decodeJSON(resp, &ur, http.StatusOK); err != nil {
		return 0, err
	}
	return ur.Count, nil
}

// MarkNotificationsRead flips the listed notifications to read.
func (s *Session) MarkNotificationsRead(ctx context.Context, ids []string) error {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/notifications/read", s.token, MarkReadRequest{IDs: ids})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// MarkAllNotificationsRead clears the caller's unread set.
func (s *Session) MarkAllNotificationsRead(ctx context.Context) error {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/notifications/read_all", s.token, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// DeleteNotification removes one notification from the caller's feed.
func (s *Session) DeleteNotification(ctx context.Context, id string) error {
	resp, err := s.client.doJSON(ctx, http.MethodDelete, "/v1/notifications/"+id, s.token, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
