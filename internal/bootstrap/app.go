package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/R3MiX9002/my-gemini-app/internal/config"
	"github.com/R3MiX9002/my-gemini-app/internal/model"
	mysqlClient "github.com/R3MiX9002/my-gemini-app/internal/platform/mysql"
	rabbitmqClient "github.com/R3MiX9002/my-gemini-app/internal/platform/rabbitmq"
	redisClient "github.com/R3MiX9002/my-gemini-app/internal/platform/redis"
	sqliteClient "github.com/R3MiX9002/my-gemini-app/internal/platform/sqlite"
	"github.com/R3MiX9002/my-gemini-app/internal/repository"
	"github.com/R3MiX9002/my-gemini-app/internal/store"
	"github.com/R3MiX9002/my-gemini-app/internal/worker"
)

type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	DB           *gorm.DB
	Redis        *redis.Client
	MQConn       *amqp.Connection
	Publisher    *rabbitmqClient.EventPublisher
	UploadWorker *worker.UploadIndexWorker
	DefaultUser  *model.User

	StartedAt time.Time
}

// New opens the database, initializes the schema and connects the optional
// Redis and RabbitMQ dependencies. A schema failure is logged, not returned.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	app := &App{
		Config:    cfg,
		Logger:    logger,
		StartedAt: time.Now(),
	}

	db, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = db
	store.Initialize(db, logger)

	user, err := repository.NewUserRepository(db).EnsureDefault(ctx, model.DefaultUserName)
	if err != nil {
		// keep serving; rows will simply reference the first user id
		logger.Error("ensure default user failed", zap.Error(err))
		user = &model.User{ID: 1, Name: model.DefaultUserName}
	}
	app.DefaultUser = user

	redisCli, err := redisClient.New(ctx, cfg.Redis)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Redis = redisCli

	if cfg.RabbitMQ.URL != "" {
		mqConn, err := rabbitmqClient.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.UploadQueue)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.MQConn = mqConn
		app.Publisher = rabbitmqClient.NewEventPublisher(mqConn, cfg.RabbitMQ.UploadQueue)

		app.UploadWorker = worker.NewUploadIndexWorker(
			mqConn,
			repository.NewProjectElementRepository(db),
			cfg.RabbitMQ.UploadQueue,
			logger,
		)
		if err := app.UploadWorker.Start(ctx); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("start upload worker failed: %w", err)
		}
	}

	logger.Info("bootstrap complete",
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("redis", app.Redis != nil),
		zap.Bool("rabbitmq", app.MQConn != nil),
		zap.Bool("llm_configured", cfg.LLMConfigured()),
	)
	return app, nil
}

// OpenDatabase connects to the configured driver without touching the schema.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		return mysqlClient.New(ctx, cfg.MySQLDSN())
	default:
		return sqliteClient.New(ctx, cfg.Database.SQLitePath)
	}
}

func (a *App) Close() error {
	var closeErr error
	if a.UploadWorker != nil {
		a.UploadWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
