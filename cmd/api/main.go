package main

import (
	"log"
	"strconv"
	"time"

	"boutique/internal/config"
	"boutique/internal/domain/model"
	"boutique/internal/handler"
	"boutique/internal/infra/db"
	infraRepo "boutique/internal/infra/repository"
	"boutique/internal/server"
	"boutique/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .env absent en prod, on ignore l'erreur
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Collection{},
		&model.Product{},
		&model.ProductVariant{},
		&model.Discount{},
		&model.Order{},
		&model.OrderItem{},
		&model.SiteConfig{},
		&model.InventoryAdjustment{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// repositories GORM
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	discountRepo := infraRepo.NewDiscountGormRepository(gormDB)
	collectionRepo := infraRepo.NewCollectionGormRepository(gormDB)
	siteConfigRepo := infraRepo.NewSiteConfigGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// pièces injectées
	idGen := &uuidGenerator{}
	clock := &realClock{}
	verifier := usecase.NewBcryptPasswordVerifier()
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}
	refreshTTL := 14 * 24 * time.Hour

	// usecases
	authUC := usecase.NewAuthUsecase(userRepo, rtRepo, verifier, issuer, idGen, clock, refreshTTL)
	productUC := usecase.NewProductUsecase(productRepo, inventoryRepo, auditRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo)
	discountUC := usecase.NewDiscountUsecase(discountRepo)
	collectionUC := usecase.NewCollectionUsecase(collectionRepo)
	siteConfigUC := usecase.NewSiteConfigUsecase(siteConfigRepo)

	e := server.New(cfg, server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		Order:        handler.NewOrderHandler(orderUC),
		AdminOrder:   handler.NewAdminOrderHandler(orderUC, adminOrderUC),
		Discount:     handler.NewDiscountHandler(discountUC),
		Collection:   handler.NewCollectionHandler(collectionUC),
		SiteConfig:   handler.NewSiteConfigHandler(siteConfigUC),
	})

	if err := server.Start(e, cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}
