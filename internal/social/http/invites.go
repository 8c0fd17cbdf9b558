package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tetherchat/tether/internal/social/domain"
	"github.com/tetherchat/tether/internal/social/service"
	"github.com/tetherchat/tether/pkg/httpx"
	"github.com/tetherchat/tether/pkg/socialsdk"
)

type InvitesHandler struct {
	InviteService *service.InviteService
}

// HandleCreate godoc
//
//	@Summary		Create an invite for two recipients
//	@Description	Recipients may be usernames, email addresses or phone numbers. Both are notified; the invite resolves into a conversation thread once both accept.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		socialsdk.CreateInviteRequest	true	"Two recipients"
//	@Success		201		{object}	socialsdk.Invite
//	@Failure		400		{object}	socialsdk.ErrorResponse
//	@Failure		404		{object}	socialsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/invites [post].
func (h *InvitesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req socialsdk.CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "Invalid JSON body")
		return
	}
	var recipients [2]service.RecipientInput
	for i, rec := range req.Recipients {
		if rec.Value == "" {
			writeInvalidRequest(w, "both recipients are required")
			return
		}
		recipients[i] = service.RecipientInput{
			Channel: domain.Channel(rec.Channel),
			Value:   rec.Value,
		}
	}

	if req.TTLHours < 0 {
		writeInvalidRequest(w, "ttl_hours must be positive")
		return
	}
	ttl := time.Duration(req.TTLHours) * time.Hour

	inv, err := h.InviteService.Create(r.Context(), httpx.UserIDFromContext(r.Context()), recipients, ttl)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, inviteView(inv))
}

// HandleList godoc
//
//	@Summary	List open invites involving the caller
//	@Tags		Invites
//	@Produce	json
//	@Success	200	{object}	socialsdk.InvitesResponse
//	@Security	BearerAuth
//	@Router		/v1/invites [get].
func (h *InvitesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	invs, err := h.InviteService.ListOpen(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := socialsdk.InvitesResponse{Invites: make([]socialsdk.Invite, 0, len(invs))}
	for _, inv := range invs {
		resp.Invites = append(resp.Invites, inviteView(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleStatus godoc
//
//	@Summary		Look up an invite's lifecycle state
//	@Description	Unauthenticated; holding the code is the capability.
//	@Tags			Invites
//	@Produce		json
//	@Param			code	path		string	true	"Invite code"
//	@Success		200		{object}	socialsdk.InviteStatusResponse
//	@Failure		404		{object}	socialsdk.ErrorResponse
//	@Router			/v1/invites/{code} [get].
func (h *InvitesHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.InviteService.Status(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, socialsdk.InviteStatusResponse{
		Code:      st.Code,
		Accepted:  st.Accepted,
		Resolved:  st.Resolved,
		ThreadID:  st.ThreadID,
		ExpiresAt: st.ExpiresAt,
		IsExpired: st.IsExpired,
	})
}

// HandleAccept godoc
//
//	@Summary		Accept one recipient slot of an invite
//	@Description	Recipient is 1 or 2. The caller must be the addressed user, or hold the verified matching contact for email/phone slots. The acceptance that completes the invite returns the new thread.
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			code	path		string							true	"Invite code"
//	@Param			request	body		socialsdk.AcceptInviteRequest	true	"Slot to claim"
//	@Success		200		{object}	socialsdk.AcceptInviteResponse
//	@Failure		403		{object}	socialsdk.ErrorResponse
//	@Failure		404		{object}	socialsdk.ErrorResponse
//	@Failure		409		{object}	socialsdk.ErrorResponse
//	@Failure		410		{object}	socialsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/invites/{code}/accept [post].
func (h *InvitesHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	var req socialsdk.AcceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "Invalid JSON body")
		return
	}

	userID := httpx.UserIDFromContext(r.Context())
	inv, thread, err := h.InviteService.Accept(r.Context(), userID, r.PathValue("code"), req.Recipient)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := socialsdk.AcceptInviteResponse{Invite: inviteView(inv)}
	if thread != nil {
		tv := threadView(*thread)
		resp.Thread = &tv
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleResend godoc
//
//	@Summary		Re-deliver an invite to one slot
//	@Description	Creator only; throttled per invite and slot.
//	@Tags			Invites
//	@Accept			json
//	@Param			code	path	string							true	"Invite code"
//	@Param			request	body	socialsdk.ResendInviteRequest	true	"Slot to resend"
//	@Success		204
//	@Failure		403	{object}	socialsdk.ErrorResponse
//	@Failure		429	{object}	socialsdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/invites/{code}/resend [post].
func (h *InvitesHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	var req socialsdk.ResendInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "Invalid JSON body")
		return
	}

	userID := httpx.UserIDFromContext(r.Context())
	if err := h.InviteService.Resend(r.Context(), userID, r.PathValue("code"), req.Recipient); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
