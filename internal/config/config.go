package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration loaded from configs/config.yml and
// COOLING_* environment variables.
type Config struct {
	Port string `mapstructure:"port"`

	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	HTTP struct {
		ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
		WriteTimeout      time.Duration `mapstructure:"write_timeout"`
		IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
		ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"http"`

	Auth struct {
		SigningKey string        `mapstructure:"signing_key"`
		TokenTTL   time.Duration `mapstructure:"token_ttl"`
	} `mapstructure:"auth"`

	Simulation Simulation `mapstructure:"simulation"`

	Stream struct {
		DefaultInterval time.Duration `mapstructure:"default_interval"`
		MaxInterval     time.Duration `mapstructure:"max_interval"`
	} `mapstructure:"stream"`

	MQTT MQTT `mapstructure:"mqtt"`
}

// Simulation holds the engine tuning that front ends may override.
type Simulation struct {
	HysteresisBand float64 `mapstructure:"hysteresis_band"`
	CoolingPower   float64 `mapstructure:"cooling_power"`
	ComfortMin     float64 `mapstructure:"comfort_min"`
	ComfortMax     float64 `mapstructure:"comfort_max"`
	MaxDuration    int     `mapstructure:"max_duration"`
}

// MQTT configures run notifications; an empty broker disables them.
type MQTT struct {
	Broker   string `mapstructure:"broker"`
	ClientID string `mapstructure:"client_id"`
	Topic    string `mapstructure:"topic"`
}

const envPrefix = "COOLING"

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("log.level", "info")

	v.SetDefault("http.read_header_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)

	v.SetDefault("simulation.hysteresis_band", 0.5)
	v.SetDefault("simulation.cooling_power", 0.2)
	v.SetDefault("simulation.comfort_min", 17.0)
	v.SetDefault("simulation.comfort_max", 30.0)
	v.SetDefault("simulation.max_duration", 10000)

	v.SetDefault("stream.default_interval", time.Second)
	v.SetDefault("stream.max_interval", 10*time.Second)

	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", "cooling-control")
	v.SetDefault("mqtt.topic", "cooling/simulations")
}

// Load reads config.yml from dir. A missing file is not an error: defaults and
// environment variables still apply.
func Load(dir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(dir) // <dir>/config.yml
	v.SetConfigName("config")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Simulation.ComfortMin > c.Simulation.ComfortMax {
		return fmt.Errorf("simulation.comfort_min %.1f exceeds comfort_max %.1f", c.Simulation.ComfortMin, c.Simulation.ComfortMax)
	}
	if c.Simulation.MaxDuration < 1 {
		return fmt.Errorf("simulation.max_duration must be at least 1, got %d", c.Simulation.MaxDuration)
	}
	if c.Simulation.HysteresisBand < 0 || c.Simulation.CoolingPower < 0 {
		return errors.New("simulation.hysteresis_band and simulation.cooling_power must not be negative")
	}
	return nil
}
