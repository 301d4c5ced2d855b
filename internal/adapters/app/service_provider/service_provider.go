package service_provider

import (
	"StackBot/internal/adapters/config"
	tgcontroller "StackBot/internal/adapters/controller/telegram"
	"StackBot/internal/adapters/logging"
	"StackBot/internal/adapters/repository/mongodb"
	"StackBot/internal/adapters/repository/redisdedupe"
	"StackBot/internal/domain/service/capture"
	"StackBot/internal/domain/service/qa"
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

// interaction IDs only need to outlive the platform's redelivery window
const dedupeTTL = 15 * time.Minute

type ServiceProvider struct {
	config config.Config
	logger *zap.Logger

	mongoClient *mongo.Client
	redisClient *redis.Client

	qaService     *qa.Service
	captureEngine *capture.Engine

	botRunner *tgcontroller.Runner
}

func New() (*ServiceProvider, error) {
	sp := &ServiceProvider{}
	if err := sp.init(); err != nil {
		return nil, err
	}
	return sp, nil
}

func (sp *ServiceProvider) BotRunner() *tgcontroller.Runner {
	return sp.botRunner
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	return sp.logger
}

func (sp *ServiceProvider) Close(ctx context.Context) {
	if sp.redisClient != nil {
		_ = sp.redisClient.Close()
	}
	if sp.mongoClient != nil {
		_ = sp.mongoClient.Disconnect(ctx)
	}
	if sp.logger != nil {
		_ = sp.logger.Sync()
	}
}

func (sp *ServiceProvider) init() error {
	cfg, err := config.Load(config.New())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	sp.config = cfg

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	sp.logger = logger

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	sp.mongoClient = mongoClient

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	sp.redisClient = redisClient

	store := mongodb.NewStore(mongoClient.Database(cfg.MongoDatabase))
	questionRepo := mongodb.NewQuestionRepo(store)
	userRepo := mongodb.NewUserRepo(store)
	deduper := redisdedupe.NewDeduper(redisClient, dedupeTTL)

	sp.qaService = qa.New(questionRepo, userRepo, logger)
	sp.captureEngine = capture.NewEngine()

	botRunner, err := tgcontroller.New(cfg.BotToken, tgcontroller.Deps{
		QA:      sp.qaService,
		Engine:  sp.captureEngine,
		Deduper: deduper,
		Store:   store,
		Logger:  logger,
		Capture: capture.Config{
			CharLimit:      cfg.CharLimit,
			PromptTimeout:  cfg.PromptTimeout,
			ConfirmTimeout: cfg.ConfirmTimeout,
		},
		VoteWindow: cfg.VoteWindow,
	})
	if err != nil {
		return fmt.Errorf("create telegram controller: %w", err)
	}
	sp.botRunner = botRunner

	logger.Info("service provider initialized")
	return nil
}
