// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек сервиса.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Factory                 `yaml:"factory"`
	RabbitMQ                `yaml:"rabbitmq"`
	DefaultAdmin            `yaml:"default_admin"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"ADDRESS_HTTP" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"ADDRESS_REDIS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Factory структура для настройки клиента внешней фабрики,
// подтверждающей заказы и выдающей токен выдачи.
type Factory struct {
	FactoryURL     string        `yaml:"factory_url" env:"FACTORY_URL"`
	FactoryAPIKey  string        `yaml:"factory_api_key" env:"FACTORY_API_KEY"`
	FactoryTimeout time.Duration `yaml:"factory_timeout" env-default:"10s"`
}

// RabbitMQ структура для настройки подключения к брокеру событий.
// Пустой адрес означает, что события заказов не публикуются.
type RabbitMQ struct {
	AmqpURL string `yaml:"amqp_url" env:"AMQP_URL"`
}

// DefaultAdmin структура для первоначального глобального администратора,
// создаваемого при старте, если он отсутствует в базе.
type DefaultAdmin struct {
	AdminEmail    string `yaml:"admin_email" env:"ADMIN_EMAIL" env-default:"a@jwt.com"`
	AdminPassword string `yaml:"admin_password" env:"ADMIN_PASSWORD"`
}

// MustLoad функция для загрузки конфига, завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
