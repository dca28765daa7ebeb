package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/passageqa/internal/accounts/service"
	"github.com/aussiebroadwan/passageqa/pkg/httpx"
	"github.com/aussiebroadwan/passageqa/pkg/jwtx"
	"github.com/aussiebroadwan/passageqa/pkg/metrics"
	"github.com/aussiebroadwan/passageqa/pkg/slogx"

	_ "github.com/aussiebroadwan/passageqa/api/accounts" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger is a dependency checked by /readyz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics

	checks map[string]Pinger

	AccountService *service.AccountService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		metrics:      m,
		checks:       make(map[string]Pinger),
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// AddReadinessCheck registers a dependency reported by /readyz under name.
func (r *Router) AddReadinessCheck(name string, p Pinger) {
	r.checks[name] = p
}

func (r *Router) ApplyRoutes() {
	r.registerSignup()
	r.registerPassword()
	r.registerAccount()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			passageqa Account Service API
//	@version		0.1.0
//	@description	Signup, login, password reset and account deletion gated by emailed one time passcodes.
//	@description
//	@description				OTP steps return a short lived ticket that must be passed to the next step.
//	@description				Session tokens are EdDSA signed JWTs.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/passageqa
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
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern with request metrics labelled by route.
func (r *Router) handle(pattern, route string, h http.Handler, mws ...httpx.Middleware) {
	if r.metrics != nil {
		mws = append([]httpx.Middleware{r.metrics.HTTPMiddleware(route)}, mws...)
	}
	r.Mux.Handle(pattern, httpx.Chain(h, mws...))
}

func (r *Router) registerSignup() {
	h := &SignupHandler{AccountService: r.AccountService}

	// OTP issue and verify are keyed by IP + email so one address cannot
	// be flooded or brute forced from a single client. Verify also has a
	// per email ceiling that holds however many clients share the guessing.
	r.handle("POST /v1/signup/otp", "signup_otp",
		http.HandlerFunc(h.HandleRequestOTP),
		httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
	)
	r.handle("POST /v1/signup/verify", "signup_verify",
		http.HandlerFunc(h.HandleVerifyOTP),
		httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		httpx.RateLimitByJSONField(httpx.ModerateLimit, "email"),
	)
	r.handle("POST /v1/signup", "signup",
		http.HandlerFunc(h.HandleComplete),
		httpx.RateLimitByIP(httpx.ModerateLimit),
	)

	login := &LoginHandler{AccountService: r.AccountService}
	r.handle("POST /v1/login", "login",
		login,
		httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "username"),
	)
}

func (r *Router) registerPassword() {
	h := &PasswordHandler{AccountService: r.AccountService}

	r.handle("POST /v1/password/otp", "password_otp",
		http.HandlerFunc(h.HandleRequestOTP),
		httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
	)
	r.handle("POST /v1/password/verify", "password_verify",
		http.HandlerFunc(h.HandleVerifyOTP),
		httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		httpx.RateLimitByJSONField(httpx.ModerateLimit, "email"),
	)
	r.handle("POST /v1/password/reset", "password_reset",
		http.HandlerFunc(h.HandleReset),
		httpx.RateLimitByIP(httpx.ModerateLimit),
	)
}

func (r *Router) registerAccount() {
	h := &AccountHandler{AccountService: r.AccountService}

	r.handle("GET /v1/account", "account_get",
		http.HandlerFunc(h.HandleGet),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.handle("DELETE /v1/account", "account_delete",
		http.HandlerFunc(h.HandleDelete),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
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
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.checks),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}
