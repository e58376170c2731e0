package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raj-baniya/copy-of-Giftology/addressbook"
	"github.com/Raj-baniya/copy-of-Giftology/auth"
	"github.com/Raj-baniya/copy-of-Giftology/catalog"
	"github.com/Raj-baniya/copy-of-Giftology/checkout"
	"github.com/Raj-baniya/copy-of-Giftology/config"
	"github.com/Raj-baniya/copy-of-Giftology/console"
	orderControllers "github.com/Raj-baniya/copy-of-Giftology/controllers/order"
	"github.com/Raj-baniya/copy-of-Giftology/identity"
	"github.com/Raj-baniya/copy-of-Giftology/logger"
	"github.com/Raj-baniya/copy-of-Giftology/middleware"
	"github.com/Raj-baniya/copy-of-Giftology/notify"
	"github.com/Raj-baniya/copy-of-Giftology/phoneauth"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/Raj-baniya/copy-of-Giftology/routes"
	"github.com/Raj-baniya/copy-of-Giftology/uploads"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", false)
		bootLog.Fatal().Err(err).Msg("config load failed")
	}

	log := logger.New(cfg.LogLevel, cfg.GinMode == gin.DebugMode)
	log.Info().Msg("starting application")
	for _, w := range cfg.Warnings {
		log.Warn().Msg(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init DB
	db := initDatabase(cfg, log)
	store := repository.NewGormStore(db)
	if err := store.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate failed")
	}

	rdb := initRedis(ctx, cfg, log)

	gateway, err := identity.NewFirebaseGateway(ctx, cfg.FirebaseCredentialsJSON, cfg.FirebaseProjectID, cfg.FirebaseWebAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("firebase init failed")
	}

	notifier := newNotifier(cfg, log)
	hub := orderControllers.NewHub(log)
	reader := catalog.NewReader(store)
	book := addressbook.New(store)

	var sessions checkout.SessionStore = checkout.NewMemoryStore(cfg.CheckoutSessionTTL)
	if rdb != nil {
		sessions = checkout.NewRedisStore(rdb, cfg.CheckoutSessionTTL)
	}

	svc := checkout.NewService(reader, store, book, notifier, sessions, hub, checkout.Options{
		FastDeliveryFee:        decimal.NewFromInt(cfg.FastDeliveryFee),
		StandardDeliveryWindow: cfg.StandardDeliveryWindow,
		FastDeliveryWindow:     cfg.FastDeliveryWindow,
		MaxProofWidth:          cfg.MaxProofWidth,
	}, log)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log))

	// Allow large file uploads
	r.MaxMultipartMemory = 32 << 20

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded images
	r.Static("/uploads", cfg.UploadsDir)

	routes.SetupRoutes(r, routes.Deps{
		Config:    cfg,
		Log:       log,
		Store:     store,
		Catalog:   reader,
		Checkout:  svc,
		Console:   console.New(store, store, store, log),
		Addresses: book,
		Identity:  gateway,
		Verifier:  newVerifier(cfg, rdb, notifier),
		Notifier:  notifier,
		Tokens:    auth.NewTokens(cfg.JWTSecret),
		Hub:       hub,
	})

	// Back up uploads at 2 AM daily
	go uploads.Backup{
		Src:       cfg.UploadsDir,
		Dest:      cfg.BackupDir,
		Retention: cfg.BackupRetention,
		Hour:      2,
		Log:       log.With().Str("component", "backup").Logger(),
	}.Run(ctx)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	level := gormlogger.Warn
	if cfg.GinMode == gin.DebugMode {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{Logger: gormlogger.Default.LogMode(level)})
	if err != nil {
		log.Fatal().Err(err).Msg("DB connection failed")
	}
	return db
}

// initRedis returns nil when REDIS_ADDR is unset; sessions and codes then live in memory.
func initRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR not set, using in-memory checkout and code stores")
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
	}
	return rdb
}

func newNotifier(cfg *config.Config, log zerolog.Logger) notify.Gateway {
	switch cfg.NotifyProvider {
	case "emailjs":
		return notify.NewEmailJS(notify.EmailJSConfig{
			Endpoint:         cfg.EmailJSEndpoint,
			ServiceID:        cfg.EmailJSServiceID,
			PublicKey:        cfg.EmailJSPublicKey,
			PrivateKey:       cfg.EmailJSPrivateKey,
			CustomerTemplate: cfg.EmailJSCustomerTemplate,
			OperatorTemplate: cfg.EmailJSOperatorTemplate,
			LeadTemplate:     cfg.EmailJSLeadTemplate,
			CodeTemplate:     cfg.EmailJSCodeTemplate,
			OperatorEmail:    cfg.OperatorEmail,
		})
	case "smtp":
		return notify.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, cfg.OperatorEmail)
	default:
		log.Warn().Str("provider", cfg.NotifyProvider).Msg("notifications are only logged")
		return notify.NewLog(log)
	}
}

func newVerifier(cfg *config.Config, rdb *redis.Client, notifier notify.Gateway) phoneauth.Verifier {
	if cfg.OTPProvider == "firebase" {
		return phoneauth.NewFirebasePhone(cfg.FirebaseWebAPIKey)
	}
	var codes phoneauth.CodeStore = phoneauth.NewMemoryStore()
	if rdb != nil {
		codes = phoneauth.NewRedisStore(rdb)
	}
	return phoneauth.NewEmailOTP(codes, notifier, cfg.OTPTTL)
}
