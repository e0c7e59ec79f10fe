package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/gigledger/gigledger/modules/auth"
	"github.com/gigledger/gigledger/modules/listings"
	"github.com/gigledger/gigledger/modules/users"
	"github.com/gigledger/gigledger/pkg/config"
	"github.com/gigledger/gigledger/pkg/email"
	"github.com/gigledger/gigledger/pkg/httpserver"
	"github.com/gigledger/gigledger/pkg/logger"
	gigmongo "github.com/gigledger/gigledger/pkg/mongo"
	gigredis "github.com/gigledger/gigledger/pkg/redis"
	"github.com/gigledger/gigledger/pkg/requestid"
)

type authConfig struct {
	JWTSecret     string        `env:"JWT_SECRET,required"`
	TokenTTL      time.Duration `env:"JWT_TTL" envDefault:"24h"`
	ChallengeTTL  time.Duration `env:"OTP_TTL" envDefault:"10m"`
	MaxAttempts   int           `env:"OTP_MAX_ATTEMPTS" envDefault:"5"`
	AttemptWindow time.Duration `env:"OTP_ATTEMPT_WINDOW" envDefault:"1m"`
}

type appConfig struct {
	Env   string `env:"APP_ENV" envDefault:"development"`
	Log   logger.Config
	HTTP  httpserver.Config
	Mongo gigmongo.Config
	Redis gigredis.Config
	Email email.Config
	Auth  authConfig
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.NewFromConfig(cfg.Log, logger.WithAttr(slog.String("app", "gigledger")))
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	mongoClient, err := gigmongo.New(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn("mongo disconnect failed", logger.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.Mongo.Database)

	redisClient, err := gigredis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	usersStorage := users.NewMongoStorage(db)
	listingsStorage := listings.NewMongoStorage(db)
	challengeStore := auth.NewMongoChallengeStore(db)
	for _, ensure := range []func(context.Context) error{
		usersStorage.EnsureIndexes,
		listingsStorage.EnsureIndexes,
		challengeStore.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return err
		}
	}

	var mailer email.EmailSender
	if cfg.Email.PostmarkServerToken != "" {
		mailer, err = email.NewPostmarkClient(cfg.Email)
		if err != nil {
			return err
		}
	} else {
		// No Postmark credentials: log deliveries so OTP codes land in the
		// process output during local development.
		mailer = email.NewDevSender(log)
	}

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	if err != nil {
		return err
	}

	hasher := auth.NewHasher(bcrypt.DefaultCost)
	limiter := auth.NewAttemptLimiter(redisClient, cfg.Auth.MaxAttempts, cfg.Auth.AttemptWindow, log)

	authSvc := auth.NewService(
		users.NewCredentialStore(usersStorage),
		hasher,
		challengeStore,
		mailer,
		tokens,
		auth.WithLogger(log),
		auth.WithChallengeTTL(cfg.Auth.ChallengeTTL),
		auth.WithAttemptLimiter(limiter),
	)
	usersSvc := users.NewService(usersStorage, hasher, log)
	listingsSvc := listings.NewService(listingsStorage, log)

	authmw := auth.Middleware(tokens)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(log,
		gigmongo.Healthcheck(mongoClient),
		gigredis.Healthcheck(redisClient),
	))
	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", auth.NewHandler(authSvc, log).Routes())
		r.Mount("/users", users.NewHandler(usersSvc, log).Routes(authmw))
		r.Mount("/listings", listings.NewHandler(listingsSvc, log).Routes(authmw))
	})

	log.Info("starting server", slog.String("env", cfg.Env))
	return httpserver.New(cfg.HTTP, log).Run(ctx, r)
}
