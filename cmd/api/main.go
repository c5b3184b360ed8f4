package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"dancemeet/config"
	_ "dancemeet/docs"
	"dancemeet/internal/adapters/auth"
	"dancemeet/internal/adapters/email"
	"dancemeet/internal/adapters/geocode"
	delivery "dancemeet/internal/delivery/http"
	"dancemeet/internal/delivery/http/controllers"
	"dancemeet/internal/delivery/http/middleware"
	"dancemeet/internal/domain"
	"dancemeet/internal/repository/postgres"
	"dancemeet/internal/services"
	"dancemeet/internal/store/memory"
)

// @title DanceMeet API
// @version 1.0
// @description Event and social-graph engine for the DanceMeet community.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	displayLoc, err := time.LoadLocation(cfg.DisplayTimeZone)
	if err != nil {
		logger.Warn("unknown display time zone, falling back to UTC", "zone", cfg.DisplayTimeZone, "err", err)
		displayLoc = time.UTC
	}

	// In-memory stores, seeded with the demo directory and events.
	hasher := auth.NewBcryptHasher(0)
	directory := memory.NewDirectory(hasher)
	if err := memory.SeedDirectory(directory); err != nil {
		logger.Error("seed directory", "err", err)
		os.Exit(1)
	}
	fallback := domain.Coordinates{Latitude: cfg.FallbackLatitude, Longitude: cfg.FallbackLongitude}
	eventStore := memory.NewEventStore(fallback, memory.SeedEvents(time.Now())...)
	friendStore := memory.NewFriendStore()

	// Session and profile persistence. The stores stay authoritative; the
	// database only carries state across restarts, so a failed connection
	// is not fatal.
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Warn("database unreachable, sessions will not survive restarts", "err", err)
	}
	sessionRepo := postgres.NewProfileRepository(db)

	// Location enrichment pipeline.
	geocoder := geocode.NewHTTPGeocoder(&http.Client{Timeout: 10 * time.Second}, cfg.GeocoderBaseURL)
	resolver := services.NewCachingResolver(geocoder, logger, cfg.GeocodeCooldown)
	enricher := services.NewEnricher(resolver, logger, cfg.EnrichMaxInFlight)

	// Invitation emails.
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailerProvider,
		FromAddress: cfg.MailerFromAddress,
		FromName:    cfg.MailerFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)

	eventService := services.NewEventService(eventStore, directory, emailService, enricher, logger, displayLoc)
	socialService := services.NewSocialService(directory, friendStore, logger)
	userService := services.NewUserService(directory, sessionRepo, friendStore, tokenIssuer, cfg.JWTExpiry, memory.DemoFriendIDs, logger)

	if _, _, err := userService.RestoreSession(context.Background()); err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("restore saved session", "err", err)
	}

	authController := controllers.NewAuthController(logger, userService)
	eventController := controllers.NewEventController(logger, eventService, displayLoc)
	socialController := controllers.NewSocialController(logger, socialService)

	mux := delivery.NewRouter(authController, eventController, socialController, tokenVerifier)
	handler := middleware.Logging(logger)(middleware.CORS(cfg.CORSAllowedOrigins)(mux))

	addr := ":" + cfg.Port
	logger.Info("starting server", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
