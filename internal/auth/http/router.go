package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/taskhubhq/taskhub/internal/auth/service"
	"github.com/taskhubhq/taskhub/internal/auth/store"
	"github.com/taskhubhq/taskhub/pkg/httpx"
	"github.com/taskhubhq/taskhub/pkg/jwtx"
	"github.com/taskhubhq/taskhub/pkg/slogx"

	_ "github.com/taskhubhq/taskhub/api/auth" // Swagger docs
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

	store               store.Store
	RegistrationService *service.RegistrationService
	LoginService        *service.LoginService
	PasswordService     *service.PasswordService
	UserService         *service.UserService
	TwoFactorService    *service.TwoFactorService
	TeamService         *service.TeamService
	TaskService         *service.TaskService
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

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMe()
	r.registerTwoFactor()
	r.registerTeams()
	r.registerTasks()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			TaskHub Authentication Service API
//	@version		0.1.0
//	@description	Authentication and authorization service for the TaskHub task platform: accounts with email verification, password logins with optional two-factor, teams, invitations and task-level permissions.
//	@description
//	@description				Session tokens are HS256-signed JWTs carried as bearer tokens. There are no refresh tokens; expiry is the only exit.
//
//	@contact.name				TaskHub Team
//	@contact.url				https://github.com/taskhubhq/taskhub
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	registration := &RegistrationHandler{Service: r.RegistrationService}
	login := &LoginHandler{Service: r.LoginService}
	password := &PasswordHandler{Service: r.PasswordService}

	// All pre-authentication endpoints get strict IP limits: each one
	// either probes credentials or triggers outbound mail.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(registration.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/verify-email",
		httpx.Chain(http.HandlerFunc(registration.HandleVerifyEmail),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/resend-code",
		httpx.Chain(http.HandlerFunc(registration.HandleResendCode),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(login.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/2fa/verify",
		httpx.Chain(http.HandlerFunc(login.HandleVerifySecondFactor),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/2fa/send-code",
		httpx.Chain(http.HandlerFunc(login.HandleSendCode),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/forgot-password",
		httpx.Chain(http.HandlerFunc(password.HandleForgotPassword),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/reset-password",
		httpx.Chain(http.HandlerFunc(password.HandleResetPassword),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerMe() {
	me := &MeHandler{UserService: r.UserService}
	password := &PasswordHandler{Service: r.PasswordService}

	// GET /v1/me - lenient rate limit by user (dashboards poll this)
	r.Mux.Handle("GET /v1/me",
		httpx.Chain(me,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// POST /v1/me/password - moderate rate limit by user
	r.Mux.Handle("POST /v1/me/password",
		httpx.Chain(http.HandlerFunc(password.HandleChangePassword),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerTwoFactor() {
	h := &TwoFactorHandler{Service: r.TwoFactorService}

	// POST /v1/me/2fa/enroll - moderate rate limit by user
	securedEnroll := httpx.Chain(http.HandlerFunc(h.HandleEnroll),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// POST /v1/me/2fa/activate - strict rate limit by user (prevent brute force of codes)
	securedActivate := httpx.Chain(http.HandlerFunc(h.HandleActivate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.StrictLimit),
	)

	// POST /v1/me/2fa/disable - moderate rate limit by user
	securedDisable := httpx.Chain(http.HandlerFunc(h.HandleDisable),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// POST /v1/me/2fa/backup-codes - moderate rate limit by user
	securedRegenerate := httpx.Chain(http.HandlerFunc(h.HandleRegenerateBackupCodes),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/me/2fa/enroll", securedEnroll)
	r.Mux.Handle("POST /v1/me/2fa/activate", securedActivate)
	r.Mux.Handle("POST /v1/me/2fa/disable", securedDisable)
	r.Mux.Handle("POST /v1/me/2fa/backup-codes", securedRegenerate)
}

func (r *Router) registerTeams() {
	h := &TeamsHandler{Service: r.TeamService}

	// POST /v1/teams - manager role only; the service checks again but the
	// middleware rejects obvious cases before any work happens
	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole("manager"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/teams", securedCreate)
	r.Mux.Handle("GET /v1/teams",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/teams/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PATCH /v1/teams/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/teams/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/teams/{id}/members",
		httpx.Chain(http.HandlerFunc(h.HandleListMembers),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/teams/{id}/members/{uid}",
		httpx.Chain(http.HandlerFunc(h.HandleRemoveMember),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Invitations trigger outbound mail, so creation is moderate even for
	// managers; accepting burns a single-use token
	r.Mux.Handle("POST /v1/teams/{id}/invitations",
		httpx.Chain(http.HandlerFunc(h.HandleInvite),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/invitations/accept",
		httpx.Chain(http.HandlerFunc(h.HandleAcceptInvitation),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerTasks() {
	h := &TasksHandler{Service: r.TaskService}

	r.Mux.Handle("POST /v1/tasks",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/tasks",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/tasks/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PATCH /v1/tasks/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/tasks/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
