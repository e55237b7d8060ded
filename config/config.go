package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Record store selection: supabase, mongo, postgres or memory.
	StoreDriver  string        `mapstructure:"STORE_DRIVER"`
	StoreTimeout time.Duration `mapstructure:"STORE_TIMEOUT"`
	DatabaseURL  string        `mapstructure:"DATABASE_URL"`
	MongoDB      string        `mapstructure:"MONGO_DATABASE"`

	// Hosted platform.
	SupabaseURL            string `mapstructure:"SUPABASE_URL"`
	SupabaseServiceRoleKey string `mapstructure:"SUPABASE_SERVICE_ROLE_KEY"`
	SupabaseJWTSecret      string `mapstructure:"SUPABASE_JWT_SECRET"`

	// Redis configuration.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int           `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int           `mapstructure:"REDIS_QUEUE_DB"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`

	// When set, a booking whose service links cannot be written deletes its appointment.
	BookingCompensate bool `mapstructure:"BOOKING_COMPENSATE"`

	// Periodic removal of appointments without service links. Zero interval disables it.
	OrphanSweepInterval time.Duration `mapstructure:"ORPHAN_SWEEP_INTERVAL"`
	OrphanSweepGrace    time.Duration `mapstructure:"ORPHAN_SWEEP_GRACE"`
}

var AppConfig Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "3000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("STORE_DRIVER", "supabase")
	v.SetDefault("STORE_TIMEOUT", "5s")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("MONGO_DATABASE", "agendamento")
	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_SERVICE_ROLE_KEY", "")
	v.SetDefault("SUPABASE_JWT_SECRET", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("BOOKING_COMPENSATE", false)
	v.SetDefault("ORPHAN_SWEEP_INTERVAL", "0s")
	v.SetDefault("ORPHAN_SWEEP_GRACE", "15m")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
