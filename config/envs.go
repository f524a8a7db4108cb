package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/beka-birhanu/vinom-nav/nav"
	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP          string // Host IP for the server
	RESTPort        int    // Port for the REST API
	GinMode         string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret       string // Secret key for JWT signing
	JWTIssuer       string // Issuer claim for JWTs
	OperatorKeyHash string // bcrypt hash of the operator key

	StoreBackend string // memory or mongo
	DBHost       string // Hostname or IP address for the database
	DBPort       int    // Port number for the database
	DBUser       string // Username for the database
	DBPassword   string // Password for the database
	DBName       string // Name of the database

	QueueBackend    string // memory or redis
	RedisAddr       string // host:port of the redis server
	QueueTTLSeconds int    // Expiration of an idle mission queue

	Executor   string // simulated, serial or udp
	SerialPort string // Serial device of the vehicle base
	SerialBaud int    // Baud rate of the serial device
	UDPAddr    string // host:port the UDP transport sends to

	TurnTime     time.Duration // Duration of a 90 degree turn
	MoveTime     time.Duration // Duration of a one cell move
	SettleDelay  time.Duration // Pause between two commands
	LinearSpeed  float64       // Linear speed sent with every command
	AngularSpeed float64       // Angular speed sent with every command
	UTurnFactor  float64       // 180 degree turn duration as a multiple of TurnTime
}

// Envs holds the application's configuration loaded from environment variables.
// It is populated by Load.
var Envs Config

// Load reads the environment into Envs and returns it.
// It loads environment variables from a .env file when one is present.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	defaults := nav.DefaultConfig()
	Envs = Config{
		HostIP:          getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:        getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:       mustGetEnv("JWT_SECRET"),
		JWTIssuer:       getEnvWithDefault("JWT_ISSUER", "vinom-nav"),
		OperatorKeyHash: mustGetEnv("OPERATOR_KEY_HASH"),

		StoreBackend: getEnvWithDefault("STORE_BACKEND", "memory"),
		DBHost:       getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:       getEnvAsIntWithDefault("DB_PORT", 27017),
		DBUser:       getEnvWithDefault("DB_USER", ""),
		DBPassword:   getEnvWithDefault("DB_PASS", ""),
		DBName:       getEnvWithDefault("DB_NAME", "vinom_nav"),

		QueueBackend:    getEnvWithDefault("QUEUE_BACKEND", "memory"),
		RedisAddr:       getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		QueueTTLSeconds: getEnvAsIntWithDefault("QUEUE_TTL_SECONDS", 3600),

		Executor:   getEnvWithDefault("EXECUTOR", "simulated"),
		SerialPort: getEnvWithDefault("SERIAL_PORT", "/dev/ttyUSB0"),
		SerialBaud: getEnvAsIntWithDefault("SERIAL_BAUD", 115200),
		UDPAddr:    getEnvWithDefault("UDP_ADDR", "127.0.0.1:9870"),

		TurnTime:     getEnvAsDurationWithDefault("TURN_TIME", defaults.TurnTime),
		MoveTime:     getEnvAsDurationWithDefault("MOVE_TIME", defaults.MoveTime),
		SettleDelay:  getEnvAsDurationWithDefault("SETTLE_DELAY", defaults.SettleDelay),
		LinearSpeed:  getEnvAsFloatWithDefault("LINEAR_SPEED", defaults.LinearSpeed),
		AngularSpeed: getEnvAsFloatWithDefault("ANGULAR_SPEED", defaults.AngularSpeed),
		UTurnFactor:  getEnvAsFloatWithDefault("UTURN_FACTOR", defaults.UTurnFactor),
	}

	if err := Envs.NavConfig().Validate(); err != nil {
		log.Fatalf("[APP] [FATAL] %v", err)
	}
	return Envs
}

// NavConfig returns the motion tuning part of the configuration.
func (c Config) NavConfig() nav.Config {
	return nav.Config{
		TurnTime:     c.TurnTime,
		MoveTime:     c.MoveTime,
		SettleDelay:  c.SettleDelay,
		LinearSpeed:  c.LinearSpeed,
		AngularSpeed: c.AngularSpeed,
		UTurnFactor:  c.UTurnFactor,
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault parses an integer variable, failing hard on garbage.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

func getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a number: %v", key, err)
	}
	return value
}

// getEnvAsDurationWithDefault accepts Go durations ("800ms") or plain seconds ("0.8").
func getEnvAsDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	seconds, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a duration: %v", key, err)
	}
	return time.Duration(seconds * float64(time.Second))
}
