package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Worker    WorkerConfig
	Geo       GeoConfig
	Weather   WeatherConfig
	Overpass  OverpassConfig
	Insee     InseeConfig
	Navitia   NavitiaConfig
	Housing   HousingConfig
	Aggregate AggregateConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	// AggregateTTL - 0 означает хранение без срока жизни
	AggregateTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
	// ClaimIdle - простой, после которого неподтвержденные сообщения перечитываются
	ClaimIdle    time.Duration
	StreamMaxLen int64
}

// GeoConfig - geo.api.gouv.fr (коммуны, центроиды, контуры)
type GeoConfig struct {
	BaseURL       string
	Timeout       time.Duration
	MinPopulation int
	// SurfaceUnit - единица поля surface: "km2" (как есть) или "hectare"
	SurfaceUnit string
}

type WeatherConfig struct {
	BaseURL  string
	Timeout  time.Duration
	Timezone string
}

type OverpassConfig struct {
	BaseURL      string
	Timeout      time.Duration
	RadiusM      int
	QueryTimeout int
}

type InseeConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type NavitiaConfig struct {
	BaseURL       string
	Token         string
	Timeout       time.Duration
	MaxStops      int
	MaxDepartures int
	RadiusM       int
}

type HousingConfig struct {
	Dir       string
	FirstYear int
	LastYear  int
	Manifest  string
}

type AggregateConfig struct {
	MaxParallel  int
	FetchTimeout time.Duration
}

func Load() (*Config, error) {
	// .env опционален: переменные окружения имеют приоритет
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			AggregateTTL: time.Duration(v.GetInt("CACHE_AGGREGATE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        v.GetInt("WORKER_MAX_RETRIES"),
			ClaimIdle:         time.Duration(v.GetInt("WORKER_CLAIM_IDLE")) * time.Second,
			StreamMaxLen:      v.GetInt64("WORKER_STREAM_MAX_LEN"),
		},
		Geo: GeoConfig{
			BaseURL:       v.GetString("GEO_API_URL"),
			Timeout:       time.Duration(v.GetInt("GEO_API_TIMEOUT")) * time.Second,
			MinPopulation: v.GetInt("GEO_MIN_POPULATION"),
			SurfaceUnit:   v.GetString("GEO_SURFACE_UNIT"),
		},
		Weather: WeatherConfig{
			BaseURL:  v.GetString("OPEN_METEO_URL"),
			Timeout:  time.Duration(v.GetInt("OPEN_METEO_TIMEOUT")) * time.Second,
			Timezone: v.GetString("OPEN_METEO_TIMEZONE"),
		},
		Overpass: OverpassConfig{
			BaseURL:      v.GetString("OVERPASS_URL"),
			Timeout:      time.Duration(v.GetInt("OVERPASS_TIMEOUT")) * time.Second,
			RadiusM:      v.GetInt("OVERPASS_RADIUS_M"),
			QueryTimeout: v.GetInt("OVERPASS_QUERY_TIMEOUT"),
		},
		Insee: InseeConfig{
			BaseURL: v.GetString("INSEE_API_URL"),
			Token:   v.GetString("INSEE_API_TOKEN"),
			Timeout: time.Duration(v.GetInt("INSEE_API_TIMEOUT")) * time.Second,
		},
		Navitia: NavitiaConfig{
			BaseURL:       v.GetString("NAVITIA_URL"),
			Token:         v.GetString("NAVITIA_TOKEN"),
			Timeout:       time.Duration(v.GetInt("NAVITIA_TIMEOUT")) * time.Second,
			MaxStops:      v.GetInt("NAVITIA_MAX_STOPS"),
			MaxDepartures: v.GetInt("NAVITIA_MAX_DEPARTURES"),
			RadiusM:       v.GetInt("NAVITIA_RADIUS_M"),
		},
		Housing: HousingConfig{
			Dir:       v.GetString("HOUSING_DIR"),
			FirstYear: v.GetInt("HOUSING_FIRST_YEAR"),
			LastYear:  v.GetInt("HOUSING_LAST_YEAR"),
			Manifest:  v.GetString("HOUSING_MANIFEST"),
		},
		Aggregate: AggregateConfig{
			MaxParallel:  v.GetInt("AGGREGATE_MAX_PARALLEL"),
			FetchTimeout: time.Duration(v.GetInt("AGGREGATE_FETCH_TIMEOUT")) * time.Second,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("CACHE_AGGREGATE_TTL", 0)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_CONSUMER_GROUP", "city-aggregate-workers")
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 5000)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
	v.SetDefault("WORKER_CLAIM_IDLE", 60)
	v.SetDefault("WORKER_STREAM_MAX_LEN", 10000)

	v.SetDefault("GEO_API_URL", "https://geo.api.gouv.fr")
	v.SetDefault("GEO_API_TIMEOUT", 10)
	v.SetDefault("GEO_MIN_POPULATION", 20000)
	v.SetDefault("GEO_SURFACE_UNIT", "km2")

	v.SetDefault("OPEN_METEO_URL", "https://api.open-meteo.com")
	v.SetDefault("OPEN_METEO_TIMEOUT", 10)
	v.SetDefault("OPEN_METEO_TIMEZONE", "Europe/Paris")

	v.SetDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
	v.SetDefault("OVERPASS_TIMEOUT", 25)
	v.SetDefault("OVERPASS_RADIUS_M", 5000)
	v.SetDefault("OVERPASS_QUERY_TIMEOUT", 25)

	v.SetDefault("INSEE_API_URL", "https://api.insee.fr/donnees-locales/V0.1")
	v.SetDefault("INSEE_API_TIMEOUT", 10)

	v.SetDefault("NAVITIA_URL", "https://api.navitia.io/v1")
	v.SetDefault("NAVITIA_TIMEOUT", 10)
	v.SetDefault("NAVITIA_MAX_STOPS", 3)
	v.SetDefault("NAVITIA_MAX_DEPARTURES", 3)
	v.SetDefault("NAVITIA_RADIUS_M", 500)

	v.SetDefault("HOUSING_DIR", "./data")
	v.SetDefault("HOUSING_FIRST_YEAR", 2014)
	v.SetDefault("HOUSING_LAST_YEAR", 2023)

	v.SetDefault("AGGREGATE_MAX_PARALLEL", 5)
	v.SetDefault("AGGREGATE_FETCH_TIMEOUT", 25)
}

func (c *Config) validate() error {
	switch c.Geo.SurfaceUnit {
	case "km2", "hectare":
	default:
		return fmt.Errorf("GEO_SURFACE_UNIT must be km2 or hectare, got %q", c.Geo.SurfaceUnit)
	}
	if c.Housing.FirstYear > c.Housing.LastYear {
		return fmt.Errorf("HOUSING_FIRST_YEAR (%d) is after HOUSING_LAST_YEAR (%d)",
			c.Housing.FirstYear, c.Housing.LastYear)
	}
	if c.Aggregate.MaxParallel <= 0 {
		c.Aggregate.MaxParallel = 5
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
