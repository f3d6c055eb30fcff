package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/hirebuddy/hirebuddy/internal/domain"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/auth"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/configs"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/logging"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/metrics"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/ratelimiter"
	adminHandler "github.com/hirebuddy/hirebuddy/internal/presentation/handler/admin"
	buddiesHandler "github.com/hirebuddy/hirebuddy/internal/presentation/handler/buddies"
	chatbotHandler "github.com/hirebuddy/hirebuddy/internal/presentation/handler/chatbot"
	customersHandler "github.com/hirebuddy/hirebuddy/internal/presentation/handler/customers"
	healthHandler "github.com/hirebuddy/hirebuddy/internal/presentation/handler/health"
	messagesHandler "github.com/hirebuddy/hirebuddy/internal/presentation/handler/messages"
	paymentsHandler "github.com/hirebuddy/hirebuddy/internal/presentation/handler/payments"
	relayHandler "github.com/hirebuddy/hirebuddy/internal/presentation/handler/relay"
	usersHandler "github.com/hirebuddy/hirebuddy/internal/presentation/handler/users"
)

type Handlers struct {
	Users     *usersHandler.Handler
	Customers *customersHandler.Handler
	Buddies   *buddiesHandler.Handler
	Admin     *adminHandler.Handler
	Messages  *messagesHandler.Handler
	Payments  *paymentsHandler.Handler
	Chatbot   *chatbotHandler.Handler
	Health    *healthHandler.Handler
	Relay     *relayHandler.Handler
}

type Application struct {
	config      configs.Config
	handlers    Handlers
	authManager *auth.Manager
	logger      logging.Logger
	ratelimiter ratelimiter.Limiter
	metrics     *metrics.Metrics
}

func NewApplication(
	config configs.Config,
	handlers Handlers,
	authManager *auth.Manager,
	logger logging.Logger,
	limiter ratelimiter.Limiter,
	m *metrics.Metrics,
) *Application {
	return &Application{
		config:      config,
		handlers:    handlers,
		authManager: authManager,
		logger:      logger,
		ratelimiter: limiter,
		metrics:     m,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(app.rateLimiterMiddleware)
	r.Use(app.enableCors)
	r.Use(app.loggerMiddleware)
	r.Use(app.prometheusMiddleware)

	authenticated := app.authManager.Authenticate

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/signup", app.handlers.Users.SignupHandler)
			r.Post("/verify-otp", app.handlers.Users.VerifyOTPHandler)
			r.Post("/login", app.handlers.Users.LoginHandler)
			r.Post("/logout", app.handlers.Users.LogoutHandler)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Use(authenticated, auth.RequireRole(domain.RoleCustomer))
			r.Get("/buddies", app.handlers.Customers.ListBuddiesHandler)
			r.Get("/buddy/{buddyId}", app.handlers.Customers.GetBuddyHandler)
			r.Post("/book", app.handlers.Customers.BookBuddyHandler)
			r.Get("/bookings", app.handlers.Customers.ListBookingsHandler)
		})

		r.Route("/buddies", func(r chi.Router) {
			r.Use(authenticated, auth.RequireRole(domain.RoleBuddy))
			r.Put("/profile", app.handlers.Buddies.UpdateProfileHandler)
			r.Put("/availability", app.handlers.Buddies.UpdateAvailabilityHandler)
			r.Get("/bookings", app.handlers.Buddies.ListBookingsHandler)
			r.Put("/bookings/{bookingId}/status", app.handlers.Buddies.UpdateBookingStatusHandler)
			r.Get("/earnings", app.handlers.Buddies.GetEarningsHandler)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticated, auth.RequireRole(domain.RoleAdmin))
			r.Get("/users", app.handlers.Admin.ListUsersHandler)
			r.Delete("/user/{userId}", app.handlers.Admin.DeleteUserHandler)
			r.Get("/bookings", app.handlers.Admin.ListBookingsHandler)
			r.Put("/booking/{bookingId}/status", app.handlers.Admin.UpdateBookingStatusHandler)
			r.Get("/stats", app.handlers.Admin.GetStatsHandler)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Use(authenticated)
			r.Get("/", app.handlers.Messages.ListMessagesHandler)
			r.Post("/", app.handlers.Messages.CreateMessageHandler)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/create-order", app.handlers.Payments.CreateOrderHandler)
			r.Post("/verify", app.handlers.Payments.VerifyHandler)
			r.Get("/credits", app.handlers.Payments.GetCreditsHandler)
		})

		r.Route("/chatbot", func(r chi.Router) {
			r.Post("/", app.handlers.Chatbot.AskHandler)
			r.Get("/status", app.handlers.Chatbot.StatusHandler)
		})

		// Token check happens inside the handler so the failure is a JSON 401
		// rather than a failed upgrade.
		r.Get("/ws", app.handlers.Relay.ServeWS)

		r.Get("/health", app.handlers.Health.GetHealth)
		r.Get("/healthz", app.handlers.Health.GetHealth)
		r.Get("/live", app.handlers.Health.GetHealth)
		r.Get("/ready", app.handlers.Health.GetReady)
	})

	if app.metrics != nil {
		r.Handle("/metrics", app.metrics.Handler())
	}

	return otelhttp.NewHandler(r, "hirebuddy-api")
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Info(logging.General, logging.Shutdown, "signal caught", map[logging.ExtraKey]any{
			"signal": s.String(),
		})

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	return nil
}
