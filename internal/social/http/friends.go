package http

import (
	"encoding/json"
	"net/http"

	"github.com/tetherchat/tether/internal/social/domain"
	"github.com/tetherchat/tether/internal/social/service"
	"github.com/tetherchat/tether/pkg/httpx"
	"github.com/tetherchat/tether/pkg/socialsdk"
)

type FriendsHandler struct {
	FriendService *service.FriendService
	QueryService  *service.QueryService
}

// HandleSendRequest godoc
//
//	@Summary		Send a friend request
//	@Description	Re-sending an open request is idempotent. A pending request from the other side must be accepted instead and is reported as a conflict.
//	@Tags			Friends
//	@Accept			json
//	@Produce		json
//	@Param			request	body		socialsdk.FriendRequestRequest	true	"Target username"
//	@Success		201		{object}	socialsdk.FriendRequestResponse
//	@Failure		400		{object}	socialsdk.ErrorResponse
//	@Failure		404		{object}	socialsdk.ErrorResponse
//	@Failure		409		{object}	socialsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/friends/requests [post].
func (h *FriendsHandler) HandleSendRequest(w http.ResponseWriter, r *http.Request) {
	var req socialsdk.FriendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "Invalid JSON body")
		return
	}
	if req.Username == "" {
		writeInvalidRequest(w, "username is required")
		return
	}

	userID := httpx.UserIDFromContext(r.Context())
	rel, err := h.FriendService.SendRequest(r.Context(), userID, req.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, socialsdk.FriendRequestResponse{
		ID:     rel.ID,
		Status: string(rel.StatusFor(userID)),
	})
}

// HandleAccept godoc
//
//	@Summary	Accept a friend request
//	@Tags		Friends
//	@Produce	json
//	@Param		id	path		string	true	"Request id"
//	@Success	200	{object}	socialsdk.FriendRequestResponse
//	@Failure	403	{object}	socialsdk.ErrorResponse
//	@Failure	404	{object}	socialsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/friends/requests/{id}/accept [post].
func (h *FriendsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	rel, err := h.FriendService.Accept(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, socialsdk.FriendRequestResponse{
		ID:     rel.ID,
		Status: string(domain.StatusFriends),
	})
}

// HandleReject godoc
//
//	@Summary		Reject a friend request
//	@Description	Deletes the request without telling the requester.
//	@Tags			Friends
//	@Param			id	path	string	true	"Request id"
//	@Success		204
//	@Failure		403	{object}	socialsdk.ErrorResponse
//	@Failure		404	{object}	socialsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/friends/requests/{id}/reject [post].
func (h *FriendsHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	if err := h.FriendService.Reject(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleList godoc
//
//	@Summary	List friends
//	@Tags		Friends
//	@Produce	json
//	@Success	200	{object}	socialsdk.FriendsResponse
//	@Security	BearerAuth
//	@Router		/v1/friends [get].
func (h *FriendsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.QueryService.Friends(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := socialsdk.FriendsResponse{Friends: make([]socialsdk.Friend, 0, len(entries))}
	for _, e := range entries {
		resp.Friends = append(resp.Friends, friendView(e))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandlePending godoc
//
//	@Summary	List pending friend requests, both directions
//	@Tags		Friends
//	@Produce	json
//	@Success	200	{object}	socialsdk.PendingResponse
//	@Security	BearerAuth
//	@Router		/v1/friends/pending [get].
func (h *FriendsHandler) HandlePending(w http.ResponseWriter, r *http.Request) {
	entries, err := h.QueryService.Pending(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := socialsdk.PendingResponse{Requests: make([]socialsdk.FriendRequest, 0, len(entries))}
	for _, e := range entries {
		resp.Requests = append(resp.Requests, pendingView(e))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleStatus godoc
//
//	@Summary	Relationship status with one user
//	@Tags		Friends
//	@Produce	json
//	@Param		username	query		string	true	"Other user's username"
//	@Success	200			{object}	socialsdk.StatusResponse
//	@Failure	404			{object}	socialsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/friends/status [get].
func (h *FriendsHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeInvalidRequest(w, "username is required")
		return
	}

	status, requestID, err := h.FriendService.Status(r.Context(), httpx.UserIDFromContext(r.Context()), username)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, socialsdk.StatusResponse{
		Username:  username,
		Status:    string(status),
		RequestID: requestID,
	})
}

// HandleUnfriend godoc
//
//	@Summary		Remove a friend
//	@Description	Idempotent; the other party is not notified.
//	@Tags			Friends
//	@Param			userID	path	string	true	"Friend's user id"
//	@Success		204
//	@Security		BearerAuth
//	@Router			/v1/friends/{userID} [delete].
func (h *FriendsHandler) HandleUnfriend(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	if err := h.FriendService.Remove(r.Context(), userID, r.PathValue("userID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
