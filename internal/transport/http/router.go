package http

import (
	"context"
	"net/http"

	"github.com/go-api-vendor/internal/application/document"
	"github.com/go-api-vendor/internal/application/otp"
	"github.com/go-api-vendor/internal/application/quotation"
	"github.com/go-api-vendor/internal/application/session"
	"github.com/go-api-vendor/internal/application/user"
	"github.com/go-api-vendor/internal/application/wallet"
	"github.com/go-api-vendor/internal/config"
	"github.com/go-api-vendor/internal/metrics"
	"github.com/go-api-vendor/internal/transport/http/handler"
	appmiddleware "github.com/go-api-vendor/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router. Background work it
// starts, such as rate-limiter cleanup, ends when ctx is cancelled.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	rec := deps.Metrics
	if rec == nil {
		rec = metrics.Nop{}
	}

	r := chi.NewRouter()
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware(rec))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10, applied to the public login endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(5), 10)
	authMw := appmiddleware.Auth(deps.Tokens)

	sessionSvc := session.NewService(session.ServiceDeps{
		SessionRepo: deps.SessionRepo,
		Signer:      deps.Tokens,
		Now:         deps.Now,
	})
	otpSvc := otp.NewService(otp.ServiceDeps{
		OTPRepo:  deps.OTPRepo,
		UserRepo: deps.UserRepo,
		Sessions: sessionSvc,
		Mailer:   deps.Mailer,
		Metrics:  rec,
		Now:      deps.Now,
	})
	userSvc := user.NewService(user.ServiceDeps{UserRepo: deps.UserRepo, Now: deps.Now})
	docSvc := document.NewService(document.ServiceDeps{
		DocumentRepo: deps.DocumentRepo,
		Blobs:        deps.Objects,
		Events:       deps.Events,
		Metrics:      rec,
		URLTTL:       cfg.DocumentURLTTL,
		Now:          deps.Now,
	})
	walletSvc := wallet.NewService(wallet.ServiceDeps{WalletRepo: deps.WalletRepo, Metrics: rec, Now: deps.Now})
	quoteSvc := quotation.NewService(quotation.ServiceDeps{Renderer: deps.PDF, Metrics: rec})

	debug := cfg.ExposeErrorDetails()
	healthH := handler.NewHealthHandler()
	otpH := handler.NewOTPHandler(otpSvc, debug)
	userH := handler.NewUserHandler(userSvc, debug)
	docH := handler.NewDocumentHandler(docSvc, debug)
	walletH := handler.NewWalletHandler(walletSvc, debug)
	quoteH := handler.NewQuotationHandler(quoteSvc, debug)

	r.Get("/health-check/{action}", healthH.Ping)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/vendor", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.With(sensitiveRL.Limit).Post("/send-otp", otpH.SendOTP)
		r.With(sensitiveRL.Limit).Post("/verify-otp", otpH.VerifyOTP)
		r.With(sensitiveRL.Limit).Post("/signup", userH.Signup)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/profile", userH.Profile)
			r.Post("/upload-document", docH.Upload)
			r.Get("/documents", docH.List)
			r.Get("/documents/{id}", docH.Get)
			r.Post("/wallet/credit", walletH.Credit)
			r.Get("/wallet/balance", walletH.Balance)
			r.Post("/quotation/pdf", quoteH.Render)
		})
	})

	return r
}
