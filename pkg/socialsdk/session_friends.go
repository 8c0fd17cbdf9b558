package socialsdk

import (
	"context"
	"net/http"
	"net/url"
)

// SendFriendRequest sends a request to the user named username.
func (s *Session) SendFriendRequest(ctx context.Context, username string) (FriendRequestResponse, error) {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/friends/requests", s.token, FriendRequestRequest{
		Username: username,
	})
	if err != nil {
		return FriendRequestResponse{}, err
	}
	var fr FriendRequestResponse
	if err := decodeJSON(resp, &fr, http.StatusCreated); err != nil {
		return FriendRequestResponse{}, err
	}
	return fr, nil
}

// AcceptFriendRequest accepts an incoming request by id.
func (s *Session) AcceptFriendRequest(ctx context.Context, requestID string) (FriendRequestResponse, error) {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/friends/requests/"+requestID+"/accept", s.token, nil)
	if err != nil {
		return FriendRequestResponse{}, err
	}
	var fr FriendRequestResponse
	if err := decodeJSON(resp, &fr, http.StatusOK); err != nil {
		return FriendRequestResponse{}, err
	}
	return fr, nil
}

// RejectFriendRequest declines an incoming request by id. The requester is
// not told.
func (s *Session) RejectFriendRequest(ctx context.Context, requestID string) error {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/friends/requests/"+requestID+"/reject", s.token, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Friends lists the caller's friends.
func (s *Session) Friends(ctx context.Context) ([]Friend, error) {
	resp, err := s.client.doJSON(ctx, http.MethodGet, "/v1/friends", s.token, nil)
	if err != nil {
		return nil, err
	}
	var fr FriendsResponse
	if err := decodeJSON(resp, &fr, http.StatusOK); err != nil {
		return nil, err
	}
	return fr.Friends, nil
}

// PendingFriendRequests lists open requests in both directions.
func (s *Session) PendingFriendRequests(ctx context.Context) ([]FriendRequest, error) {
	resp, err := s.client.doJSON(ctx, http.MethodGet, "/v1/friends/pending", s.token, nil)
	if err != nil {
		return nil, err
	}
	var pr PendingResponse
	if err := decodeJSON(resp, &pr, http.StatusOK); err != nil {
		return nil, err
	}
	return pr.Requests, nil
}

// FriendStatus reports the relationship with the named user.
func (s *Session) FriendStatus(ctx context.Context, username string) (StatusResponse, error) {
	q := url.Values{"username": {username}}
	resp, err := s.client.doJSON(ctx, http.MethodGet, "/v1/friends/status?"+q.Encode(), s.token, nil)
	if err != nil {
		return StatusResponse{}, err
	}
	var sr StatusResponse
	if err := decodeJSON(resp, &sr, http.StatusOK); err != nil {
		return StatusResponse{}, err
	}
	return sr, nil
}

// Unfriend removes a friendship. Removing a non-friend succeeds silently.
func (s *Session) Unfriend(ctx context.Context, userID string) error {
	resp, err := s.client.doJSON(ctx, http.MethodDelete, "/v1/friends/"+userID, s.token, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
