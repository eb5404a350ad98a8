package main

import (
	"kommercio/internal/config"
	"kommercio/internal/domain/model"
	"kommercio/internal/handler"
	"kommercio/internal/infra/db"
	infrarepo "kommercio/internal/infra/repository"
	"kommercio/internal/payment"
	"kommercio/internal/server"
	"kommercio/internal/usecase"
	"kommercio/internal/validator"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	//.envはローカル開発用。無ければ環境変数をそのまま使う。
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	err = conn.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	//repository
	userRepo := infrarepo.NewUserGormRepository(conn)
	productRepo := infrarepo.NewProductGormRepository(conn)
	cartItemRepo := infrarepo.NewCartItemGormRepository(conn)
	orderRepo := infrarepo.NewOrderGormRepository(conn)
	txManager := infrarepo.NewTxManagerGorm(conn)

	//決済。PayPal未設定ならmock決済のみで動く。
	var gateway payment.Gateway
	if cfg.PayPalEnabled() {
		gw, err := payment.NewPayPalGateway(cfg.PayPalClientID, cfg.PayPalSecret, cfg.PayPalMode, log)
		if err != nil {
			log.Fatal("failed to init paypal client", zap.Error(err))
		}
		gateway = gw
		log.Info("paypal gateway enabled", zap.String("mode", cfg.PayPalMode))
	} else {
		log.Warn("paypal credentials not set, falling back to mock payments")
	}

	//usecase
	authUsecase := usecase.NewAuthUsecase(cfg, userRepo, validator.NewAuthValidator())
	productUsecase := usecase.NewProductUsecase(txManager, productRepo)
	cartUsecase := usecase.NewCartUsecase(cartItemRepo, productRepo)
	orderUsecase := usecase.NewOrderUsecase(txManager, orderRepo, cartItemRepo, gateway, cfg.FrontendURL)

	//handler
	handlers := server.Handlers{
		Auth:    handler.NewAuthHandler(authUsecase),
		Product: handler.NewProductHandler(productUsecase),
		Cart:    handler.NewCartHandler(cartUsecase),
		Order:   handler.NewOrderHandler(orderUsecase),
		Health:  handler.NewHealthHandler(conn),
	}

	srv := server.New(cfg, log, authUsecase, handlers)

	log.Info("starting server", zap.String("port", cfg.Port))
	if err := srv.Start(); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
