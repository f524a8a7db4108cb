package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-nav/api"
	api_i "github.com/beka-birhanu/vinom-nav/api/i"
	"github.com/beka-birhanu/vinom-nav/api/identity"
	"github.com/beka-birhanu/vinom-nav/api/navigation"
	"github.com/beka-birhanu/vinom-nav/config"
	"github.com/beka-birhanu/vinom-nav/infrastruture/executor"
	"github.com/beka-birhanu/vinom-nav/infrastruture/memory"
	"github.com/beka-birhanu/vinom-nav/infrastruture/repo"
	"github.com/beka-birhanu/vinom-nav/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-nav/infrastruture/token"
	"github.com/beka-birhanu/vinom-nav/service"
	"github.com/beka-birhanu/vinom-nav/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient        *mongo.Client
	redisClient        *redis.Client
	missionRepo        i.MissionRepo
	missionQueue       i.SortedQueue
	motionExecutor     i.MotionExecutor
	executorCloser     io.Closer
	missionService     *service.MissionService
	jwtTokenizer       i.Tokenizer
	authService        i.Authenticator
	authController     api_i.Controller
	planningController api_i.Controller
	missionController  api_i.Controller
	router             *api.Router
	appLogger          *log.Logger
)

func newLogger(name, color string) *log.Logger {
	return log.New(os.Stdout, fmt.Sprintf("%s[%s]%s ", color, name, config.ColorReset), log.LstdFlags)
}

func fatal(format string, args ...interface{}) {
	appLogger.Printf("%s[ERROR]%s "+format, append([]interface{}{config.LogErrorColor, config.LogColorReset}, args...)...)
	os.Exit(1)
}

func info(format string, args ...interface{}) {
	appLogger.Printf("%s[INFO]%s "+format, append([]interface{}{config.LogInfoColor, config.LogColorReset}, args...)...)
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		fatal("Failed to connect to MongoDB: %v", err)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		fatal("MongoDB ping failed: %v", err)
	}
	info("Connected to MongoDB")
}

func initMissionRepo(ctx context.Context) {
	switch config.Envs.StoreBackend {
	case "mongo":
		initMongo(ctx)
		missionRepo = repo.NewMissionRepo(mongoClient, config.Envs.DBName, "missions")
	case "memory":
		missionRepo = memory.NewMissionRepo()
	default:
		fatal("Unknown STORE_BACKEND %q", config.Envs.StoreBackend)
	}
	info("Mission repository initialized (%s)", config.Envs.StoreBackend)
}

func initMissionQueue(ctx context.Context) {
	switch config.Envs.QueueBackend {
	case "redis":
		redisClient = redis.NewClient(&redis.Options{Addr: config.Envs.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			fatal("Redis ping failed: %v", err)
		}
		missionQueue = sortedstorage.NewRedisSortedQueue(redisClient, config.Envs.QueueTTLSeconds)
	case "memory":
		missionQueue = memory.NewSortedQueue()
	default:
		fatal("Unknown QUEUE_BACKEND %q", config.Envs.QueueBackend)
	}
	info("Mission queue initialized (%s)", config.Envs.QueueBackend)
}

func initExecutor() {
	execLogger := newLogger("EXECUTOR", config.ColorMagenta)
	switch config.Envs.Executor {
	case "serial":
		s, err := executor.OpenSerial(config.Envs.SerialPort, config.Envs.SerialBaud, execLogger)
		if err != nil {
			fatal("Opening serial port %s: %v", config.Envs.SerialPort, err)
		}
		motionExecutor, executorCloser = s, s
	case "udp":
		u, err := executor.DialUDP(config.Envs.UDPAddr, execLogger)
		if err != nil {
			fatal("Dialing %s: %v", config.Envs.UDPAddr, err)
		}
		motionExecutor, executorCloser = u, u
	case "simulated":
		motionExecutor = executor.NewSimulated(execLogger, 1)
	default:
		fatal("Unknown EXECUTOR %q", config.Envs.Executor)
	}
	info("Motion executor initialized (%s)", config.Envs.Executor)
}

func initMissionService() {
	var err error
	missionService, err = service.NewMissionService(&service.MissionConfig{
		Repo:      missionRepo,
		Queue:     missionQueue,
		Executor:  motionExecutor,
		NavConfig: config.Envs.NavConfig(),
		Logger:    newLogger("MISSION", config.ColorCyan),
	}, nil)
	if err != nil {
		fatal("Creating mission service: %v", err)
	}
	info("Mission service initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewOperatorAuth(config.Envs.OperatorKeyHash, jwtTokenizer, 0)
	if err != nil {
		fatal("Creating auth service: %v", err)
	}
	info("Auth service initialized")
}

func initControllers() {
	var err error
	authController = identity.NewIdentityServer(authService)
	planningController, err = navigation.NewPlanningController(config.Envs.NavConfig())
	if err != nil {
		fatal("Creating planning controller: %v", err)
	}
	missionController = navigation.NewMissionController(missionService)
	info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, planningController, missionController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	info("Router initialized")
}

func main() {
	appLogger = newLogger("APP", config.ColorGreen)
	config.Load()
	gin.SetMode(config.Envs.GinMode)

	initCtx, cancelInit := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancelInit()

	initMissionRepo(initCtx)
	if mongoClient != nil {
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
	}
	initMissionQueue(initCtx)
	if redisClient != nil {
		defer redisClient.Close()
	}
	initExecutor()
	if executorCloser != nil {
		defer executorCloser.Close()
	}

	initMissionService()
	initJWTTokenizer()
	initAuthService()
	initControllers()
	initRouter(jwtTokenizer)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := missionService.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			appLogger.Printf("%s[ERROR]%s Mission worker stopped: %v", config.LogErrorColor, config.LogColorReset, err)
		}
	}()

	if err := router.Run(runCtx); err != nil {
		fatal("Starting server: %v", err)
	}
	stop()
	<-workerDone

	// leave the vehicle halted on shutdown
	haltCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := missionService.Stop(haltCtx); err != nil {
		appLogger.Printf("%s[ERROR]%s Halting vehicle: %v", config.LogErrorColor, config.LogColorReset, err)
	}
	info("Shut down")
}
