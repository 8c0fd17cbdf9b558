package http

import (
	"encoding/json"
	"net/http"

	"github.com/tetherchat/tether/internal/social/service"
	"github.com/tetherchat/tether/pkg/httpx"
	"github.com/tetherchat/tether/pkg/jwtx"
	"github.com/tetherchat/tether/pkg/socialsdk"
)

type RegisterHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Register a new account
//	@Description	Creates an account with an optional email and phone. Contact channels start unverified.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		socialsdk.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	socialsdk.User
//	@Failure		400		{object}	socialsdk.ErrorResponse
//	@Failure		409		{object}	socialsdk.ErrorResponse
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req socialsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "Invalid JSON body")
		return
	}

	u, err := h.UserService.Register(r.Context(), service.RegisterParams{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, ownUser(u))
}

type LoginHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Exchanges username and password for a bearer session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		socialsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	socialsdk.LoginResponse
//	@Failure		401		{object}	socialsdk.ErrorResponse
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req socialsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "Invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeInvalidRequest(w, "username and password are required")
		return
	}

	token, u, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	ttl := h.UserService.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, socialsdk.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		User:        ownUser(u),
	})
}
