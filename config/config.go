package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"connectfour/meta"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	LogLevel  string
	LogPretty bool

	PlyDepth         int
	ScoreTable       string
	TerminalCutoff   bool
	SearchGoroutines int

	TournamentGames int
	RandomSeed      uint64
	ResultsDir      string

	RedisURL      string
	RedisPassword string
	CacheTTL      time.Duration

	DatabaseURL     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Load reads .env files when present, then the environment.
func Load(files ...string) *Config {
	if err := godotenv.Load(files...); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded, using the environment only")
	}

	return &Config{
		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogPretty: GetEnvAsBool("LOG_PRETTY", true),

		PlyDepth:         GetEnvAsInt("PLY_DEPTH", meta.PLY_DEPTH),
		ScoreTable:       GetEnv("SCORE_TABLE", "standard"),
		TerminalCutoff:   GetEnvAsBool("TERMINAL_CUTOFF", false),
		SearchGoroutines: GetEnvAsInt("SEARCH_GOROUTINES", meta.GO_ROUTINES),

		TournamentGames: GetEnvAsInt("TOURNAMENT_GAMES", meta.GAMES),
		RandomSeed:      uint64(GetEnvAsInt("RANDOM_SEED", int(time.Now().UnixNano()&0x7fffffff))),
		ResultsDir:      GetEnv("RESULTS_DIR", "results"),

		RedisURL:      GetEnv("REDIS_URL", ""),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		CacheTTL:      time.Duration(GetEnvAsInt("CACHE_TTL_MINUTES", 60)) * time.Minute,

		DatabaseURL:     GetEnv("DATABASE_URL", ""),
		MaxOpenConns:    GetEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    GetEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,
	}
}

// SetupLogging sets the global zerolog level and output.
func SetupLogging(level string, pretty bool) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Msgf("invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Msgf("invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
