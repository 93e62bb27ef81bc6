package config

import "time"

type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=1"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
}

type APIConfig struct {
	Port               int      `mapstructure:"port" validate:"gte=1,lte=65535"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=redis postgres"`
}

type RedisConfig struct {
	Host         string        `mapstructure:"host" validate:"required"`
	Port         int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db" validate:"gte=0"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolSize     int           `mapstructure:"pool_size" validate:"gte=1"`
	MinIdleConns int           `mapstructure:"min_idle_conns" validate:"gte=0"`
}

type DBConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int32         `mapstructure:"max_open_conns" validate:"gte=1"`
	MinIdleConns    int32         `mapstructure:"min_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	HealthTimeout   time.Duration `mapstructure:"health_timeout" validate:"gt=0"`
}

type WorkerConfig struct {
	IntervalDefault int           `mapstructure:"interval_default" validate:"gte=1"` // seconds between sweeps
	MetricsPort     int           `mapstructure:"metrics_port" validate:"gte=1,lte=65535"`
	PacingDelay     time.Duration `mapstructure:"pacing_delay" validate:"gte=0"`
	ErrorBackoff    time.Duration `mapstructure:"error_backoff" validate:"gt=0"`
}

type HTTPConfig struct {
	TimeoutSeconds float64 `mapstructure:"timeout_seconds" validate:"gt=0"`
}

type Config struct {
	Env         string       `mapstructure:"env"`
	ServiceName string       `mapstructure:"service_name" validate:"required"`
	Log         LogConfig    `mapstructure:"log"`
	API         APIConfig    `mapstructure:"api"`
	Store       StoreConfig  `mapstructure:"store"`
	Redis       RedisConfig  `mapstructure:"redis"`
	DB          DBConfig     `mapstructure:"db"`
	Worker      WorkerConfig `mapstructure:"worker"`
	HTTP        HTTPConfig   `mapstructure:"http"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SweepInterval is the pause between two worker sweeps.
func (w WorkerConfig) SweepInterval() time.Duration {
	return time.Duration(w.IntervalDefault) * time.Second
}

func (h HTTPConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds * float64(time.Second))
}
