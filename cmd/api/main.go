package main

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/mailer"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	gormDB, err := db.Connect()
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	if err := db.Migrate(gormDB); err != nil {
		logrus.Fatalf("failed to migrate: %v", err)
	}

	// repository
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	tokenRepo := infraRepo.NewAuthTokenGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	wishlistRepo := infraRepo.NewWishlistGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// mail
	smtp := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	notifier := mailer.NewOrderMailer(smtp, cfg.OrderNotifyTo)

	// usecase
	idGen := &uuidGenerator{}
	registerUC := auth.NewRegisterUsecase(userRepo, auth.NewBcryptPasswordHasher(12))
	loginUC := auth.NewLoginUsecase(userRepo, tokenRepo, auth.NewBcryptPasswordVerifier(), idGen)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo)
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, notifier)

	e := server.New()
	server.RegisterRoutes(e, server.Handlers{
		Product:  handler.NewProductHandler(productUC),
		Category: handler.NewCategoryHandler(productUC),
		Auth:     handler.NewAuthHandler(registerUC, loginUC),
		Cart:     handler.NewCartHandler(cartUC),
		Wishlist: handler.NewWishlistHandler(wishlistUC),
		Order:    handler.NewOrderHandler(orderUC),
	}, tokenRepo)

	addr := ":" + cfg.Port
	logrus.WithField("addr", addr).Info("starting api server")
	if err := e.Start(addr); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
