package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Behyna/airtime-topup/pkg/mpesa"
	"github.com/Behyna/airtime-topup/pkg/mq"
	"github.com/Behyna/airtime-topup/pkg/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	API            API            `mapstructure:"api"`
	Database       mysql.Config   `mapstructure:"database"`
	RabbitMQ       mq.Config      `mapstructure:"rabbitmq"`
	Mpesa          mpesa.Config   `mapstructure:"mpesa"`
	Metrics        Metrics        `mapstructure:"metrics"`
	AuditPublisher AuditPublisher `mapstructure:"audit_publisher"`
}

type API struct {
	Port         string        `mapstructure:"port"`
	ProxyHeader  string        `mapstructure:"proxy_header"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type Metrics struct {
	Enabled         bool          `mapstructure:"enabled"`
	CollectInterval time.Duration `mapstructure:"collect_interval"`
}

type AuditPublisher struct {
	Queue     string        `mapstructure:"queue"`
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
}

// Provider credentials keep the environment names operators already use.
var envBindings = map[string]string{
	"mpesa.consumer_key":    "MPESA_CONSUMER_KEY",
	"mpesa.consumer_secret": "MPESA_CONSUMER_SECRET",
	"mpesa.dealer_number":   "DEALERNUMBER",
	"mpesa.dealer_pin":      "DEALERPIN",
}

func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads config.yml from path. Values from the environment, including
// a .env file in the working directory, take precedence.
func LoadFrom(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(path)

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", ":8000")
	v.SetDefault("api.read_timeout", 10*time.Second)
	v.SetDefault("api.write_timeout", 40*time.Second)

	v.SetDefault("database.port", "3306")
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("rabbitmq.connection_name", "airtime-topup")
	v.SetDefault("rabbitmq.heartbeat", 10*time.Second)

	v.SetDefault("mpesa.token_path", "/oauth/v1/generate")
	v.SetDefault("mpesa.topup_path", "/v1/pretups/api/recharge")
	v.SetDefault("mpesa.timeout", 30*time.Second)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.collect_interval", 15*time.Second)

	v.SetDefault("audit_publisher.queue", "airtime.audit")
	v.SetDefault("audit_publisher.interval", 30*time.Second)
	v.SetDefault("audit_publisher.batch_size", 100)
}
