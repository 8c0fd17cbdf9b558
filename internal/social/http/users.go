package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tetherchat/tether/internal/social/domain"
	"github.com/tetherchat/tether/internal/social/service"
	"github.com/tetherchat/tether/pkg/httpx"
	"github.com/tetherchat/tether/pkg/socialsdk"
)

type UsersHandler struct {
	UserService   *service.UserService
	VerifyService *service.VerificationService
}

// HandleMe godoc
//
//	@Summary	Get own profile
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	socialsdk.User
//	@Failure	401	{object}	socialsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/users/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.Get(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ownUser(u))
}

// HandleSearch godoc
//
//	@Summary	Search users by username
//	@Tags		Users
//	@Produce	json
//	@Param		q		query		string	true	"Username substring"
//	@Param		limit	query		int		false	"Max results (default 20)"
//	@Success	200		{object}	socialsdk.SearchResponse
//	@Security	BearerAuth
//	@Router		/v1/users/search [get].
func (h *UsersHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, err := h.UserService.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := socialsdk.SearchResponse{Users: make([]socialsdk.User, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, publicUser(u))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleUpdateContact godoc
//
//	@Summary		Update own email or phone
//	@Description	The replaced value loses its verified status until re-verified.
//	@Tags			Users
//	@Accept			json
//	@Param			request	body	socialsdk.UpdateContactRequest	true	"Channel and new value"
//	@Success		204
//	@Failure		400	{object}	socialsdk.ErrorResponse
//	@Failure		409	{object}	socialsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/users/me/contact [put].
func (h *UsersHandler) HandleUpdateContact(w http.ResponseWriter, r *http.Request) {
	var req socialsdk.UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "Invalid JSON body")
		return
	}

	userID := httpx.UserIDFromContext(r.Context())
	if err := h.UserService.UpdateContact(r.Context(), userID, domain.Channel(req.Channel), req.Value); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleVerifyStart godoc
//
//	@Summary	Send a contact verification code
//	@Tags		Users
//	@Accept		json
//	@Param		request	body	socialsdk.VerifyStartRequest	true	"Channel to verify"
//	@Success	204
//	@Failure	400	{object}	socialsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/users/me/verify [post].
func (h *UsersHandler) HandleVerifyStart(w http.ResponseWriter, r *http.Request) {
	var req socialsdk.VerifyStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "Invalid JSON body")
		return
	}

	userID := httpx.UserIDFromContext(r.Context())
	if err := h.VerifyService.Start(r.Context(), userID, domain.Channel(req.Channel)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleVerifyConfirm godoc
//
//	@Summary	Confirm a contact verification code
//	@Tags		Users
//	@Accept		json
//	@Param		request	body	socialsdk.VerifyConfirmRequest	true	"Channel and code"
//	@Success	204
//	@Failure	400	{object}	socialsdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/v1/users/me/verify/confirm [post].
func (h *UsersHandler) HandleVerifyConfirm(w http.ResponseWriter, r *http.Request) {
	var req socialsdk.VerifyConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "Invalid JSON body")
		return
	}
	if req.Code == "" {
		writeInvalidRequest(w, "code is required")
		return
	}

	userID := httpx.UserIDFromContext(r.Context())
	if err := h.VerifyService.Confirm(r.Context(), userID, domain.Channel(req.Channel), req.Code); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
