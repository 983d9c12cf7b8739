package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// HTTP
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
	// MySQL
	MySQLDSN string `envconfig:"MYSQL_DSN" default:"user:password@tcp(127.0.0.1:3306)/sierra?charset=utf8mb4&parseTime=True"`
	// Redis
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	// JWT
	AccessSecret  string `envconfig:"JWT_ACCESS_SECRET" default:""`
	RefreshSecret string `envconfig:"JWT_REFRESH_SECRET" default:""`
	// SMTP
	SMTPHost     string `envconfig:"SMTP_HOST" default:""`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME" default:""`
	SMTPPassword string `envconfig:"SMTP_PASSWORD" default:""`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"NoReply <no-reply@example.com>"`
	// Kafka
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS" default:"127.0.0.1:9092"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"sierra.activity"`
	KafkaEnabled bool     `envconfig:"KAFKA_ENABLED" default:"false"`
}

// Load 先读 .env（没有也不报错），再从环境变量填充
func Load() (App, error) {
	_ = godotenv.Load()
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
