package main

import (
	"context"
	"expvar"
	"log"
	"runtime"

	"github.com/joho/godotenv"

	"github.com/hirebuddy/hirebuddy/internal/chat"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/assistant"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/auth"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/configs"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/events"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/logging"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/messaging"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/metrics"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/notify"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/otp"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/payments"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/ratelimiter"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/tracing"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/ws"
	"github.com/hirebuddy/hirebuddy/internal/persistence/db"
	"github.com/hirebuddy/hirebuddy/internal/persistence/repository"
	"github.com/hirebuddy/hirebuddy/internal/presentation/api"
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

const serviceName = "hirebuddy-api"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	tracerCfg := tracing.NewDefaultConfig(serviceName)

	sh, err := tracing.InitTracer(tracerCfg)
	if err != nil {
		log.Fatalf("Failed to initialize the tracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer sh(ctx)

	logger := logging.NewLogger(logging.NewDefaultConfig())

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	mongoClient, err := db.NewMongoClient(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = db.DisconnectMongo(context.Background(), mongoClient)
	}()

	database := db.GetDatabase(mongoClient, cfg.Mongo)

	userRepository := repository.NewUserRepository(database)
	bookingRepository := repository.NewBookingRepository(database)
	messageRepository := repository.NewMessageRepository(database)
	auditRepository := repository.NewBookingAuditRepository(database)

	for _, repo := range []interface {
		EnsureIndexes(ctx context.Context) error
	}{userRepository, bookingRepository, messageRepository, auditRepository} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatalf("Failed to ensure indexes: %v", err)
		}
	}

	redisClient, err := otp.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal(err)
	}
	defer redisClient.Close()

	pendingStore := otp.NewRedisPendingStore(redisClient, cfg.Redis)

	rabbitmq, err := messaging.NewRabbitMQ(cfg.RabbitMQ.URI)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitmq.Close()

	logger.Info(logging.RabbitMQ, logging.Startup, "rabbitmq connected", nil)

	publisher := events.NewBookingPublisher(rabbitmq)

	consumer := events.NewBookingConsumer(rabbitmq, auditRepository, logger)
	if err := consumer.Listen(); err != nil {
		log.Fatal(err)
	}

	m := metrics.New()

	gate := chat.NewGate(bookingRepository)
	chatService := chat.NewService(gate, messageRepository, auditRepository, publisher)

	registry := ws.NewRegistry()
	wsCore := ws.NewCore(registry, chatService, logger, m)
	go wsCore.Run(ctx)

	var assistantProvider assistant.Provider
	if cfg.Assistant.Enabled() {
		provider, err := assistant.NewEinoProvider(ctx, cfg.Assistant)
		if err != nil {
			logger.Warn(logging.General, logging.Startup, "chat model unavailable, assistant will use local replies", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		} else {
			assistantProvider = provider
		}
	}
	assistantService := assistant.NewService(assistantProvider, logger)

	authManager := auth.NewManager(cfg.Auth)
	sender := notify.NewLogSender(logger)
	verifier := payments.NewVerifier(cfg.Payments)
	gateway := payments.NewStubGateway(cfg.Payments)

	handlers := api.Handlers{
		Users:     usersHandler.NewHandler(userRepository, pendingStore, sender, authManager, logger),
		Customers: customersHandler.NewHandler(userRepository, bookingRepository, publisher, logger),
		Buddies:   buddiesHandler.NewHandler(userRepository, bookingRepository, publisher, logger),
		Admin:     adminHandler.NewHandler(userRepository, bookingRepository, publisher, logger),
		Messages:  messagesHandler.NewHandler(chatService, registry),
		Payments:  paymentsHandler.NewHandler(userRepository, gateway, verifier, cfg.Payments.KeyID),
		Chatbot:   chatbotHandler.NewHandler(assistantService),
		Health:    healthHandler.NewHandler(mongoClient),
		Relay:     relayHandler.NewHandler(wsCore, authManager, logger),
	}

	rl := ratelimiter.New(ratelimiter.Options{
		MaxRatePerSecond: cfg.RateLimiter.MaxRatePerSecond,
		MaxBurst:         cfg.RateLimiter.MaxBurst,
		Cache:            ratelimiter.NewRedisCache(redisClient),
		CacheTTL:         cfg.RateLimiter.CacheTTL,
		SourceHeaderKey:  cfg.RateLimiter.SourceHeaderKey,
	})

	app := api.NewApplication(*cfg, handlers, authManager, logger, rl, m)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		log.Fatal(err)
	}
}
