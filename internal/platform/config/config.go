package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBName     string `envconfig:"DB_NAME" default:"servibook"`
	// Redis
	RedisHost string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort string `envconfig:"REDIS_PORT" default:"6379"`
	// Feed channels are named "<prefix>:<table>".
	FeedChannelPrefix string `envconfig:"FEED_CHANNEL_PREFIX" default:"changes"`
	// HTTP
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	// Logging
	LogFilePath string `envconfig:"LOG_FILE_PATH" default:"logs/servibook.log"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
