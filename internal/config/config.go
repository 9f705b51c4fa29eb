package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Alturino/storefront/internal/constants"
)

type Application struct {
	Env  string `mapstructure:"env"  json:"env"`
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

type Database struct {
	Name           string `mapstructure:"name"            json:"name"`
	Host           string `mapstructure:"host"            json:"host"`
	MigrationPath  string `mapstructure:"migration_path"  json:"migration_path"`
	Password       string `mapstructure:"password"        json:"-"`
	Username       string `mapstructure:"username"        json:"username"`
	MaxConnections int32  `mapstructure:"max_connections" json:"max_connections"`
	MinConnections int32  `mapstructure:"min_connections" json:"min_connections"`
	Port           uint16 `mapstructure:"port"            json:"port"`
}

type Cache struct {
	Host     string `mapstructure:"host"     json:"host"`
	Password string `mapstructure:"password" json:"-"`
	Database int    `mapstructure:"database" json:"database"`
	Port     uint16 `mapstructure:"port"     json:"port"`
}

type Otel struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

type Storefront struct {
	Locale            string        `mapstructure:"locale"              json:"locale"`
	CurrencySymbol    string        `mapstructure:"currency_symbol"     json:"currency_symbol"`
	PlaceholderImage  string        `mapstructure:"placeholder_image"   json:"placeholder_image"`
	CartBackend       string        `mapstructure:"cart_backend"        json:"cart_backend"`
	ProductServiceURL string        `mapstructure:"product_service_url" json:"product_service_url"`
	SessionTTL        time.Duration `mapstructure:"session_ttl"         json:"session_ttl"`
	Places            int32         `mapstructure:"places"              json:"places"`
}

type Notification struct {
	Backend      string   `mapstructure:"backend"       json:"backend"`
	KafkaTopic   string   `mapstructure:"kafka_topic"   json:"kafka_topic"`
	KafkaBrokers []string `mapstructure:"kafka_brokers" json:"kafka_brokers"`
}

type Config struct {
	Database     `mapstructure:"db"           json:"db"`
	Cache        `mapstructure:"cache"        json:"cache"`
	Application  `mapstructure:"application"  json:"application"`
	Otel         `mapstructure:"otel"         json:"otel"`
	Storefront   `mapstructure:"storefront"   json:"storefront"`
	Notification `mapstructure:"notification" json:"notification"`
}

const (
	CartBackendMemory = "memory"
	CartBackendRedis  = "redis"
)

var (
	once   sync.Once
	config *Config
)

func setDefaults() {
	viper.SetDefault("application.env", "development")
	viper.SetDefault("application.host", "0.0.0.0")
	viper.SetDefault("application.port", 8080)
	viper.SetDefault("storefront.locale", "vi-VN")
	viper.SetDefault("storefront.currency_symbol", "đ")
	viper.SetDefault("storefront.places", 0)
	viper.SetDefault("storefront.placeholder_image", "/images/placeholder.png")
	viper.SetDefault("storefront.cart_backend", CartBackendRedis)
	viper.SetDefault("storefront.session_ttl", 24*time.Hour)
	viper.SetDefault("storefront.product_service_url", "http://product-service:8080/products")
	viper.SetDefault("notification.backend", "redis")
	viper.SetDefault("notification.kafka_topic", "storefront.notifications")
}

func Get(c context.Context, filename string) *Config {
	once.Do(func() {
		logger := zerolog.Ctx(c).
			With().
			Str(constants.KEY_TAG, "main config.Get").
			Str(constants.KEY_PROCESS, "init config").
			Str("filename", filename).
			Logger()

		setDefaults()
		viper.SetConfigName(filename)
		viper.AddConfigPath("./env")
		viper.SetConfigType("yaml")
		viper.AutomaticEnv()

		logger = logger.With().Str(constants.KEY_PROCESS, "reading config").Logger()
		logger.Info().Msg("reading config")
		err := viper.ReadInConfig()
		if err != nil {
			err = fmt.Errorf("failed reading config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("read config")

		logger = logger.With().Str(constants.KEY_PROCESS, "unmarshaling config").Logger()
		logger.Info().Msg("unmarshaling config")
		cfg := Config{}
		err = viper.Unmarshal(&cfg)
		if err != nil {
			err = fmt.Errorf("failed unmarshaling config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		config = &cfg
		logger.Info().Any(constants.KEY_CONFIG, cfg).Msg("unmarshaled config")
	})
	return config
}
