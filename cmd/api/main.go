package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/rafaelmeira/boatvest/internal/domain/entity"
	accountUseCase "github.com/rafaelmeira/boatvest/internal/domain/usecase/account"
	purchaseUseCase "github.com/rafaelmeira/boatvest/internal/domain/usecase/purchase"
	referralUseCase "github.com/rafaelmeira/boatvest/internal/domain/usecase/referral"
	"github.com/rafaelmeira/boatvest/internal/domain/usecase/sequencer"
	walletUseCase "github.com/rafaelmeira/boatvest/internal/domain/usecase/wallet"
	yieldUseCase "github.com/rafaelmeira/boatvest/internal/domain/usecase/yield"

	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/handler"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/routes"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/auth"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/database"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/logger"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/mailer"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/payment"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/repository"
	timeProvider "github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/time"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.Environment == config.Production, cfg.Logger.Level)
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	// database
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		LogLevel:        cfg.Logger.Level,
	}

	conn, err := database.NewConnection(dbConfig, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = conn.Close() }()

	if err := database.NewMigrator(conn.DB, appLogger).Migrate(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// repositories
	userRepo := repository.NewUserRepository(conn.DB, tp, appLogger)
	holdingRepo := repository.NewHoldingRepository(conn.DB, appLogger)
	referralRepo := repository.NewReferralRepository(conn.DB, appLogger)
	withdrawalRepo := repository.NewWithdrawalRepository(conn.DB, appLogger)
	uow := database.NewUnitOfWork(conn.DB, appLogger, tp)

	// gateways
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, tp)
	paymentGateway := payment.NewMercadoPagoGateway(payment.Config{
		AccessToken: cfg.Payment.AccessToken,
		PayerEmail:  cfg.Payment.PayerEmail,
		BaseURL:     cfg.Payment.BaseURL,
		Timeout:     cfg.Payment.Timeout,
	}, appLogger)
	mail := mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
		To:       cfg.Mail.To,
	}, appLogger)

	// use cases
	seq := sequencer.New(appLogger)
	catalog := entity.DefaultCatalog()

	accounts := accountUseCase.NewService(userRepo, referralRepo, hasher, tokens, tp, appLogger)
	yields := yieldUseCase.NewService(userRepo, holdingRepo, seq, tp, appLogger)
	referrals := referralUseCase.NewService(userRepo, referralRepo, uow, buildReferralPolicy(cfg), appLogger)
	purchases := purchaseUseCase.NewService(catalog, uow, userRepo, holdingRepo, yields, referrals, seq, tp, appLogger)

	limits, err := walletLimits(cfg)
	if err != nil {
		appLogger.Error("Invalid wallet limits in configuration", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	wallets := walletUseCase.NewService(limits, userRepo, holdingRepo, withdrawalRepo, uow,
		paymentGateway, mail, seq, tp, appLogger)

	// background accrual sweep
	sweeper := yieldUseCase.NewSweeper(yields, holdingRepo, appLogger)
	if cfg.Yield.SweepEnabled {
		if err := sweeper.Start(cfg.Yield.SweepSchedule); err != nil {
			appLogger.Error("Failed to start yield sweep", map[string]any{
				"schedule": cfg.Yield.SweepSchedule,
				"error":    err.Error(),
			})
			os.Exit(1)
		}
	}

	// HTTP layer
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, cfg.Server.AllowedOrigins)
	routes.SetupRoutes(router, routes.Handlers{
		Auth:       handler.NewAuthHandler(accounts, appLogger),
		User:       handler.NewUserHandler(accounts, appLogger),
		Yield:      handler.NewYieldHandler(yields, appLogger),
		Purchase:   handler.NewPurchaseHandler(catalog, purchases, appLogger),
		Referral:   handler.NewReferralHandler(referrals, appLogger),
		Payment:    handler.NewPaymentHandler(wallets, appLogger),
		Withdrawal: handler.NewWithdrawalHandler(wallets, appLogger),
	}, tokens)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// stop accepting requests before draining the operation queues, so
	// in-flight mutations finish instead of hitting a closed sequencer
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	if cfg.Yield.SweepEnabled {
		sweeper.Stop()
	}
	seq.Shutdown()

	appLogger.Info("Server exited gracefully", nil)
}

// buildReferralPolicy maps the configured policy name onto an implementation
func buildReferralPolicy(cfg *config.Config) referralUseCase.Policy {
	if cfg.Referral.Policy == "tiered" {
		return referralUseCase.TieredPolicy{Rates: cfg.Referral.TieredBps}
	}
	return referralUseCase.FlatPolicy{
		FirstBps:      cfg.Referral.FirstBps,
		SubsequentBps: cfg.Referral.SubsequentBps,
	}
}

// walletLimits parses the configured two-decimal minimums into centavos
func walletLimits(cfg *config.Config) (walletUseCase.Limits, error) {
	minDeposit, err := entity.ParseAmount(cfg.Wallet.MinDeposit)
	if err != nil {
		return walletUseCase.Limits{}, fmt.Errorf("wallet.minDeposit: %w", err)
	}
	minWithdrawal, err := entity.ParseAmount(cfg.Wallet.MinWithdrawal)
	if err != nil {
		return walletUseCase.Limits{}, fmt.Errorf("wallet.minWithdrawal: %w", err)
	}
	return walletUseCase.Limits{MinDeposit: minDeposit, MinWithdrawal: minWithdrawal}, nil
}
