package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tetherchat/tether/internal/social/service"
	"github.com/tetherchat/tether/internal/social/store"
	"github.com/tetherchat/tether/pkg/httpx"
	"github.com/tetherchat/tether/pkg/jwtx"
	"github.com/tetherchat/tether/pkg/slogx"

	_ "github.com/tetherchat/tether/api/social" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	UserService   *service.UserService
	FriendService *service.FriendService
	InviteService *service.InviteService
	QueryService  *service.QueryService
	VerifyService *service.VerificationService
	Dispatcher    *service.NotificationDispatcher
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerFriends()
	r.registerInvites()
	r.registerNotifications()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
//
//	@title			Tether Social Service API
//	@version		0.1.0
//	@description	Friend relationships, two-recipient invites and notifications for the Tether chat platform.
//	@description
//	@description				Sessions are bearer JWTs issued by the login endpoint.
//
//	@contact.name				Tether Team
//	@contact.url				https://github.com/tetherchat/tether
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// Credential endpoints get the strict limit to slow brute force.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(&RegisterHandler{UserService: r.UserService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(&LoginHandler{UserService: r.UserService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService, VerifyService: r.VerifyService}

	r.Mux.Handle("GET /v1/users/me", r.secured(h.HandleMe, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/users/search", r.secured(h.HandleSearch, httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/users/me/contact", r.secured(h.HandleUpdateContact, httpx.ModerateLimit))

	// Verification sends external messages; keep it strict.
	r.Mux.Handle("POST /v1/users/me/verify", r.secured(h.HandleVerifyStart, httpx.StrictLimit))
	r.Mux.Handle("POST /v1/users/me/verify/confirm", r.secured(h.HandleVerifyConfirm, httpx.StrictLimit))
}

func (r *Router) registerFriends() {
	h := &FriendsHandler{FriendService: r.FriendService, QueryService: r.QueryService}

	r.Mux.Handle("POST /v1/friends/requests", r.secured(h.HandleSendRequest, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/friends/requests/{id}/accept", r.secured(h.HandleAccept, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/friends/requests/{id}/reject", r.secured(h.HandleReject, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/friends", r.secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/friends/pending", r.secured(h.HandlePending, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/friends/status", r.secured(h.HandleStatus, httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/friends/{userID}", r.secured(h.HandleUnfriend, httpx.ModerateLimit))
}

func (r *Router) registerInvites() {
	h := &InvitesHandler{InviteService: r.InviteService}

	r.Mux.Handle("POST /v1/invites", r.secured(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/invites", r.secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/invites/{code}/accept", r.secured(h.HandleAccept, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/invites/{code}/resend", r.secured(h.HandleResend, httpx.ModerateLimit))

	// Status lookup is unauthenticated: the code is the capability. Strict
	// IP limiting dampens code scanning on top of the 128-bit space.
	r.Mux.Handle("GET /v1/invites/{code}",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerNotifications() {
	h := &NotificationsHandler{Dispatcher: r.Dispatcher}

	r.Mux.Handle("GET /v1/notifications", r.secured(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/notifications/unread_count", r.secured(h.HandleUnreadCount, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/notifications/read", r.secured(h.HandleMarkRead, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/notifications/read_all", r.secured(h.HandleMarkAllRead, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/notifications/{id}", r.secured(h.HandleDelete, httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

// secured wraps a handler with authentication and a per-user rate limit.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(limit),
	)
}
