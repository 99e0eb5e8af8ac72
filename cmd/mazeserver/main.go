// Command mazeserver serves maze builds and batch exports over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/beka-birhanu/vinom-mazegen/api"
	api_i "github.com/beka-birhanu/vinom-mazegen/api/i"
	"github.com/beka-birhanu/vinom-mazegen/api/identity"
	"github.com/beka-birhanu/vinom-mazegen/api/mazeapi"
	"github.com/beka-birhanu/vinom-mazegen/config"
	"github.com/beka-birhanu/vinom-mazegen/infrastruture/cache"
	logger "github.com/beka-birhanu/vinom-mazegen/infrastruture/log"
	"github.com/beka-birhanu/vinom-mazegen/infrastruture/repo"
	"github.com/beka-birhanu/vinom-mazegen/infrastruture/token"
	"github.com/beka-birhanu/vinom-mazegen/preset"
	"github.com/beka-birhanu/vinom-mazegen/service"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
)

// Global variables for dependencies
var (
	envs           config.Config
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	presets        *preset.Registry
	mazeRepo       *repo.MazeRepo
	mazeCache      i.MazeCache
	generator      i.MazeBuilder
	batchRunner    i.BatchRunner
	jwtTokenizer   i.Tokenizer
	mazeController api_i.Controller
	router         *api.Router
	appLogger      *logrus.Entry
)

func fail(msg string, err error) {
	appLogger.WithError(err).Error(msg)
	os.Exit(1)
}

func initLogger() {
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.SetLevel(appLogger, envs.LogLevel); err != nil {
		fail("Parsing log level", err)
	}
}

func initPresets() {
	presets = preset.Defaults()
	if envs.PresetsFile == "" {
		return
	}
	var err error
	presets, err = preset.LoadFile(envs.PresetsFile)
	if err != nil {
		fail("Loading presets", err)
	}
	appLogger.WithField("presets", presets.Names()).Info("Presets loaded")
}

func initMongo(ctx context.Context) {
	var err error
	mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(envs.MongoURI()))
	if err != nil {
		fail("Failed to connect to MongoDB", err)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		fail("MongoDB ping failed", err)
	}
	appLogger.Info("Connected to MongoDB")
}

func initMazeRepo() {
	mazeRepo = repo.NewMazeRepo(mongoClient, envs.DBName, "mazes")
	appLogger.Info("Maze repository initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     envs.RedisAddr,
		Password: envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		fail("Redis ping failed", err)
	}
	mazeCache = cache.NewRedisMazeCache(redisClient, envs.CacheTTLSeconds)
	appLogger.Info("Maze cache initialized")
}

func initServices() {
	serviceLogger, err := logger.New("GENERATOR", config.ColorCyan, os.Stdout)
	if err != nil {
		fail("Creating generator logger", err)
	}
	if err := logger.SetLevel(serviceLogger, envs.LogLevel); err != nil {
		fail("Parsing log level", err)
	}

	generator = service.NewGenerator(serviceLogger)
	batchRunner, err = service.NewBatch(service.BatchConfig{
		Presets: presets,
		Builder: generator,
		Store:   mazeRepo,
		Workers: envs.Workers,
		Logger:  serviceLogger,
	})
	if err != nil {
		fail("Creating batch service", err)
	}
	appLogger.Info("Maze services initialized")
}

func initJWTTokenizer() {
	if envs.JWTSecret == "" {
		envs.JWTSecret = config.MustGetEnv("JWT_SECRET")
	}
	jwtTokenizer = token.NewJwtService(envs.JWTSecret, envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initMazeController() {
	apiLogger, err := logger.New("MAZE-API", config.ColorMagenta, os.Stdout)
	if err != nil {
		fail("Creating api logger", err)
	}

	mazeController, err = mazeapi.NewMazeController(mazeapi.Config{
		Presets:       presets,
		Builder:       generator,
		Cache:         mazeCache,
		Reader:        mazeRepo,
		Batches:       batchRunner,
		MaxBatchCount: envs.MaxBatchCount,
		Logger:        apiLogger,
	})
	if err != nil {
		fail("Creating maze controller", err)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", envs.HostIP, envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    envs.GinMode,
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: identity.Authorize(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	var err error
	envs, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Loading config: %v\n", err)
		os.Exit(1)
	}

	initLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	initPresets()
	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	initMazeRepo()
	initRedis(ctx)
	defer redisClient.Close()

	initServices()
	initJWTTokenizer()
	initMazeController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		fail("Starting server", err)
	}
}
