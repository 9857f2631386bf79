package config

import (
	"os"
	"strconv"
	"time"

	"chat_economy/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	JWTSecret   string

	// API limits
	APIRateLimit  int
	APIRateWindow time.Duration

	Economy EconomyConfig
}

// EconomyConfig holds every tunable of the economy core. It is built once at
// startup and injected into services; nothing mutates it afterwards.
type EconomyConfig struct {
	// Base reward rates per activity kind, in dollars.
	MessageReward    float64
	ReactionReward   float64
	VoiceReward      float64 // per minute
	DailyLoginReward float64

	// Per-day quota per activity kind.
	DailyMessageLimit  int
	DailyReactionLimit int
	DailyVoiceLimit    int // minutes

	// Counter store expiry: period length plus slack.
	DailyCounterTTL  time.Duration
	WeeklyCounterTTL time.Duration

	// Exchange: dollars required per token.
	ExchangeRate int64

	// Weekly salary.
	SalaryBase          int64
	SalaryPerActiveDay  int64
	SalaryActiveDaysCap int64
	SalaryPeriod        time.Duration

	// Registration grants.
	RegistrationBonus  int64
	StarterMachineType string

	// Machine catalog: token price of each machine type, used both for
	// purchase and as the original price in resale pricing.
	MachinePrices map[string]int64
}

func defaultEconomy() EconomyConfig {
	return EconomyConfig{
		MessageReward:    10,
		ReactionReward:   5,
		VoiceReward:      2,
		DailyLoginReward: 50,

		DailyMessageLimit:  30,
		DailyReactionLimit: 20,
		DailyVoiceLimit:    120,

		DailyCounterTTL:  26 * time.Hour,
		WeeklyCounterTTL: 8 * 24 * time.Hour,

		ExchangeRate: 10,

		SalaryBase:          250,
		SalaryPerActiveDay:  7,
		SalaryActiveDaysCap: 50,
		SalaryPeriod:        7 * 24 * time.Hour,

		RegistrationBonus:  100,
		StarterMachineType: "rusty_drill",

		MachinePrices: map[string]int64{
			"rusty_drill":  200,
			"excavator":    500,
			"laser_cutter": 1200,
			"quantum_rig":  3000,
		},
	}
}

// Load reads configuration from env (.env supported for local runs).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	eco := defaultEconomy()
	if v := os.Getenv("EXCHANGE_RATE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			eco.ExchangeRate = n
		}
	}
	if v := os.Getenv("DAILY_MESSAGE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			eco.DailyMessageLimit = n
		}
	}
	if v := os.Getenv("DAILY_REACTION_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			eco.DailyReactionLimit = n
		}
	}
	if v := os.Getenv("DAILY_VOICE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			eco.DailyVoiceLimit = n
		}
	}
	if v := os.Getenv("REGISTRATION_BONUS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			eco.RegistrationBonus = n
		}
	}

	return &Config{
		AppPort:       port,
		DatabaseURL:   dbURL,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		JWTSecret:     jwtSecret,
		APIRateLimit:  apiRateLimit,
		APIRateWindow: apiRateWindow,
		Economy:       eco,
	}
}
