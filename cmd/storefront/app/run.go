package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/minh2003vt/OkiMart/configs"
	httpadapter "github.com/minh2003vt/OkiMart/internal/adapter/http"
	"github.com/minh2003vt/OkiMart/internal/adapter/http/middleware"
	"github.com/minh2003vt/OkiMart/internal/adapter/queue"
	"github.com/minh2003vt/OkiMart/internal/adapter/repo"
	"github.com/minh2003vt/OkiMart/internal/adapter/storage"
	"github.com/minh2003vt/OkiMart/internal/catalog"
	"github.com/minh2003vt/OkiMart/internal/logging"
	"github.com/minh2003vt/OkiMart/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logging.Init(cfg.App.Name, cfg.App.LogFile)
	log := logging.New("bootstrap")

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// state store backend
	var state usecase.StateStore
	switch cfg.Storage.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return nil, nil, err
		}
		cleanups = append(cleanups, func() { _ = rdb.Close() })
		state = storage.NewRedisStore(rdb)
	default:
		fs, err := storage.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		state = fs
	}

	// optional order archive
	var checkoutOpts []usecase.CheckoutOption
	if cfg.MySQL.DSN != "" {
		db, err := sql.Open("mysql", cfg.MySQL.DSN)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
		db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := db.PingContext(ctx); err != nil {
			cancel()
			cleanup()
			return nil, nil, err
		}
		cancel()
		cleanups = append(cleanups, func() { _ = db.Close() })
		checkoutOpts = append(checkoutOpts, usecase.WithArchive(repo.NewMySQLOrderArchive(db)))
	}

	// optional order.created publisher
	if cfg.Rabbit.URL != "" {
		conn, err := amqp.Dial(cfg.Rabbit.URL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		ch, err := conn.Channel()
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		producer, err := queue.NewRabbitProducer(ch)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, func() { _ = conn.Close() })
		checkoutOpts = append(checkoutOpts, usecase.WithEvents(producer))
	}

	ctx := context.Background()
	cat := catalog.NewSeeded()
	ids := usecase.NewIdentityStore(ctx, state, logging.New("identity"))
	cart := usecase.NewCartStore(ctx, state, ids, cat, logging.New("cart"))
	engine := usecase.NewCheckoutEngine(ctx, cat, state, logging.New("checkout"), checkoutOpts...)

	log.Info("storefront starting", "storage", cfg.Storage.Backend)

	sf := httpadapter.NewStorefrontHandler(cat, ids, cart, engine)
	sh := httpadapter.NewSessionHandler(ids, cfg)
	sess := middleware.NewSession(cfg)
	router := httpadapter.NewRouter(sf, sh, sess, logging.New("http"), cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	return &App{Router: router}, cleanup, nil
}
