package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "sme-exchange-backend/internal/adapter/http"
	mw "sme-exchange-backend/internal/adapter/middleware"
	"sme-exchange-backend/internal/adapter/repository/mysql"
	"sme-exchange-backend/internal/config"
	"sme-exchange-backend/internal/infrastructure/cache"
	"sme-exchange-backend/internal/infrastructure/db"
	"sme-exchange-backend/internal/usecase/analysis"
	"sme-exchange-backend/internal/usecase/companies"
	"sme-exchange-backend/internal/usecase/credits"
	"sme-exchange-backend/internal/usecase/explain"
	"sme-exchange-backend/internal/usecase/market"
	"sme-exchange-backend/internal/usecase/marketplace"
	"sme-exchange-backend/internal/usecase/portfolio"
	"sme-exchange-backend/internal/usecase/simulator"
	"sme-exchange-backend/internal/usecase/swaps"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap: %v", err)
	}
	defer logger.Sync()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		logger.Fatal("mysql", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	companyRepo := mysql.NewCompanyRepository(gdb)
	lenderRepo := mysql.NewLenderRepository(gdb)
	marketRepo := mysql.NewMarketplaceRepository(gdb)
	swapRepo := mysql.NewSwapRepository(gdb)
	creditRepo := mysql.NewCreditRepository(gdb)
	gormUoW := mysql.NewGormUoW(gdb)

	policy := cfg.Policy()

	analysisUC := analysis.NewUsecase(policy, gormUoW, logger)
	marketplaceUC := marketplace.NewUsecase(loanRepo, companyRepo, lenderRepo, marketRepo, policy, gormUoW)
	swapsUC := swaps.NewUsecase(loanRepo, companyRepo, lenderRepo, swapRepo, policy, gormUoW)
	simulatorUC := simulator.NewUsecase(loanRepo, companyRepo, lenderRepo, policy)
	creditsUC := credits.NewUsecase(lenderRepo, creditRepo, gormUoW)
	portfolioUC := portfolio.NewUsecase(companyRepo, loanRepo, lenderRepo)
	companiesUC := companies.NewUsecase(companyRepo, loanRepo, lenderRepo)
	marketUC := market.NewUsecase(companyRepo, loanRepo, lenderRepo, policy)
	explainUC := explain.NewUsecase(loanRepo, companyRepo, lenderRepo)

	// First boot on an empty database seeds the demo book and scores it.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := analysisUC.Seed(ctx, cfg.SeedCompanies, cfg.InitialCredits); err != nil {
		cancel()
		logger.Fatal("seed", zap.Error(err))
	}
	cancel()

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(mw.RequestLogger(logger), middleware.Recover())

	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Health:      httpadp.NewHandler(),
		Portfolio:   httpadp.NewPortfolioHandler(portfolioUC, analysisUC),
		Company:     httpadp.NewCompanyHandler(companiesUC),
		Marketplace: httpadp.NewMarketplaceHandler(marketplaceUC),
		Swap:        httpadp.NewSwapHandler(swapsUC),
		Simulator:   httpadp.NewSimulatorHandler(simulatorUC),
		Credit:      httpadp.NewCreditHandler(creditsUC),
		Market:      httpadp.NewMarketHandler(marketUC),
		AI:          httpadp.NewAIHandler(explainUC),
	}, mw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	addr := ":" + cfg.AppPort
	logger.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
