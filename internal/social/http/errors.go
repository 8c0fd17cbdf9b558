package http

import (
	"errors"
	"net/http"

	"github.com/tetherchat/tether/internal/social/contact"
	"github.com/tetherchat/tether/internal/social/service"
	"github.com/tetherchat/tether/pkg/httpx"
	"github.com/tetherchat/tether/pkg/socialsdk"
)

// writeError maps a service error to its wire representation. Unrecognised
// errors become opaque 500s so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	status, code, desc := classify(err)
	httpx.WriteJSON(w, status, socialsdk.ErrorResponse{
		Error:            code,
		ErrorDescription: desc,
	})
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrInviteNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		return http.StatusNotFound, socialsdk.ErrorCodeNotFound, err.Error()

	case errors.Is(err, service.ErrNotAuthorized):
		return http.StatusForbidden, socialsdk.ErrorCodeForbidden, err.Error()

	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, socialsdk.ErrorCodeUnauthorized, err.Error()

	case errors.Is(err, service.ErrAlreadyFriends),
		errors.Is(err, service.ErrDuplicateRequest),
		errors.Is(err, service.ErrUsernameAlreadyTaken),
		errors.Is(err, service.ErrContactAlreadyTaken),
		errors.Is(err, service.ErrInviteResolved):
		return http.StatusConflict, socialsdk.ErrorCodeConflict, err.Error()

	case errors.Is(err, service.ErrInviteExpired):
		return http.StatusGone, socialsdk.ErrorCodeInviteExpired, err.Error()

	case errors.Is(err, service.ErrAlreadyAccepted):
		return http.StatusConflict, socialsdk.ErrorCodeAlreadyAccepted, err.Error()

	case errors.Is(err, service.ErrSlotMismatch):
		return http.StatusForbidden, socialsdk.ErrorCodeSlotMismatch, err.Error()

	case errors.Is(err, service.ErrContactNotVerified):
		return http.StatusForbidden, socialsdk.ErrorCodeContactUnverified, err.Error()

	case errors.Is(err, service.ErrResendThrottled):
		return http.StatusTooManyRequests, socialsdk.ErrorCodeRateLimitExceeded, err.Error()

	case errors.Is(err, service.ErrSelfRequest),
		errors.Is(err, service.ErrSameRecipient),
		errors.Is(err, service.ErrInvalidRecipient),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrNoContactOnFile),
		errors.Is(err, contact.ErrInvalidEmail),
		errors.Is(err, contact.ErrInvalidPhone),
		errors.Is(err, contact.ErrInvalidUsername),
		errors.Is(err, contact.ErrUnknownUser):
		return http.StatusBadRequest, socialsdk.ErrorCodeInvalidRequest, err.Error()
	}

	return http.StatusInternalServerError, socialsdk.ErrorCodeServerError, "internal server error"
}

// writeInvalidRequest is for request-shape problems caught in handlers.
func writeInvalidRequest(w http.ResponseWriter, desc string) {
	httpx.WriteJSON(w, http.StatusBadRequest, socialsdk.ErrorResponse{
		Error:            socialsdk.ErrorCodeInvalidRequest,
		ErrorDescription: desc,
	})
}
