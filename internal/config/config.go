package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Simulation SimulationConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Tracker    TrackerConfig
	Stats      StatsConfig
	Log        LogConfig
	Worker     WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// SimulationConfig - подключение к симуляционному backend (SUMO + ETA-модель)
type SimulationConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	NetworkCacheTTL time.Duration
	StatsCacheTTL   time.Duration
}

// TrackerConfig - параметры трекера поездок
type TrackerConfig struct {
	PollInterval          time.Duration
	HistoryCapacity       int
	AllowExpressSelection bool
}

// StatsConfig - границы бакетов для агрегированных метрик точности.
// Границы приходят в снапшот статистики, агрегатор их не хардкодит.
type StatsConfig struct {
	DurationBucketShortMax float64 // секунды
	DurationBucketMedMax   float64
	DistanceBucketShortMax float64 // метры
	DistanceBucketMedMax   float64
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Simulation: SimulationConfig{
			BaseURL:        viper.GetString("SIM_BASE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("SIM_REQUEST_TIMEOUT")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			NetworkCacheTTL: time.Duration(viper.GetInt("NETWORK_CACHE_TTL")) * time.Second,
			StatsCacheTTL:   time.Duration(viper.GetInt("STATS_CACHE_TTL")) * time.Second,
		},
		Tracker: TrackerConfig{
			PollInterval:          time.Duration(viper.GetInt("TRACKER_POLL_INTERVAL_MS")) * time.Millisecond,
			HistoryCapacity:       viper.GetInt("TRACKER_HISTORY_CAPACITY"),
			AllowExpressSelection: viper.GetBool("TRACKER_ALLOW_EXPRESS_SELECTION"),
		},
		Stats: StatsConfig{
			DurationBucketShortMax: viper.GetFloat64("STATS_DURATION_SHORT_MAX"),
			DurationBucketMedMax:   viper.GetFloat64("STATS_DURATION_MEDIUM_MAX"),
			DistanceBucketShortMax: viper.GetFloat64("STATS_DISTANCE_SHORT_MAX"),
			DistanceBucketMedMax:   viper.GetFloat64("STATS_DISTANCE_MEDIUM_MAX"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
		},
	}

	// Set default values if not provided
	if cfg.Simulation.BaseURL == "" {
		cfg.Simulation.BaseURL = "http://localhost:8000"
	}
	if cfg.Simulation.RequestTimeout == 0 {
		cfg.Simulation.RequestTimeout = 10 * time.Second
	}
	if cfg.Tracker.PollInterval == 0 {
		cfg.Tracker.PollInterval = time.Second
	}
	if cfg.Tracker.HistoryCapacity == 0 {
		cfg.Tracker.HistoryCapacity = 20
	}
	if cfg.Cache.NetworkCacheTTL == 0 {
		cfg.Cache.NetworkCacheTTL = time.Hour
	}
	if cfg.Cache.StatsCacheTTL == 0 {
		cfg.Cache.StatsCacheTTL = time.Minute
	}
	if cfg.Stats.DurationBucketShortMax == 0 {
		cfg.Stats.DurationBucketShortMax = 300
	}
	if cfg.Stats.DurationBucketMedMax == 0 {
		cfg.Stats.DurationBucketMedMax = 900
	}
	if cfg.Stats.DistanceBucketShortMax == 0 {
		cfg.Stats.DistanceBucketShortMax = 2000
	}
	if cfg.Stats.DistanceBucketMedMax == 0 {
		cfg.Stats.DistanceBucketMedMax = 5000
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "journey-stats-workers"
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
