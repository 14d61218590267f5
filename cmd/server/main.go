package main // Entry point package

import (
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/camdenmotors/dealerweb/internal/config"
	"github.com/camdenmotors/dealerweb/internal/database"
	"github.com/camdenmotors/dealerweb/internal/form"
	"github.com/camdenmotors/dealerweb/internal/handler"
	"github.com/camdenmotors/dealerweb/internal/middleware"
	"github.com/camdenmotors/dealerweb/internal/queue"
	"github.com/camdenmotors/dealerweb/internal/repository"
	"github.com/camdenmotors/dealerweb/internal/router"
	queuepublisher "github.com/camdenmotors/dealerweb/internal/service"
	"github.com/camdenmotors/dealerweb/internal/view"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	accounts := repository.NewAccountRepo(db)
	classifications := repository.NewClassificationRepo(db)
	inventory := repository.NewInventoryRepo(db)
	reviews := repository.NewReviewRepo(db)

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.NewErrorHandler(classifications)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Printf("%s %s -> %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	// Identity decoding runs on every request; anonymous visitors pass
	// through with no identity set.
	e.Use(middleware.LoadIdentity(cfg.JWTSecret))

	// Redis is optional. When it is unreachable the limiter and the page
	// cache both degrade to pass-through middleware.
	rdb := config.NewRedisClient()
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	forms := form.New(accounts, classifications, inventory, reviews)
	base := handler.NewBaseHandler(classifications, reviews)
	account := handler.NewAccountHandler(cfg, accounts, classifications)
	inv := handler.NewInventoryHandler(classifications, inventory, reviews)
	rev := handler.NewReviewHandler(reviews, inventory, queuepublisher.PublishReviewSubmitted)

	router.RegisterRoutes(e, base)
	router.RegisterAccount(e, account, forms, limiter)
	router.RegisterInventory(e, inv, rev, forms, cache)

	// Background consumer that mirrors submitted reviews into logs/reviews.log.
	go func() {
		if err := queue.StartReviewConsumer(); err != nil {
			log.Printf("review consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
