package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	Cache    CacheConfig
	Upload   UploadConfig
	Logging  LoggingConfig
	Security SecurityConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port   string `validate:"required"`
	Host   string
	AppURL string `validate:"required,url"` // URL do front usada nos links de reset de senha
}

type DatabaseConfig struct {
	Host        string `validate:"required"`
	Port        int    `validate:"required"`
	User        string `validate:"required"`
	Password    string
	DBName      string `validate:"required"`
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxIdleTime int
}

type RedisConfig struct {
	URL string // vazio = cache em memória
}

type JWTConfig struct {
	Secret string        `validate:"required"`
	Expiry time.Duration `validate:"required"`
}

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

type CacheConfig struct {
	TTL time.Duration
}

type UploadConfig struct {
	Directory string `validate:"required"`
}

type LoggingConfig struct {
	Level     string
	Directory string `validate:"required"`
	FileLogs  bool   // quando falso, erros são persistidos na tabela error_logs
}

type SecurityConfig struct {
	BcryptCost int `validate:"required,min=4,max=31"`
}

type CORSConfig struct {
	AllowedOrigins string
}

// Load carrega as configurações do arquivo .env e do ambiente.
// Variáveis obrigatórias ausentes abortam a inicialização.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if _, err := os.Stat(".env"); err == nil {
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	viper.SetDefault("ENV", "development")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIN_CONNS", 2)
	viper.SetDefault("DB_MAX_IDLE_TIME", 300)
	viper.SetDefault("JWT_EXPIRATION", "24h")
	viper.SetDefault("BCRYPT_COST", 10)
	viper.SetDefault("CACHE_TTL", "5m")
	viper.SetDefault("UPLOADS_DIRECTORY", "uploads")
	viper.SetDefault("LOGS_DIRECTORY", "logs")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ENABLE_FILE_LOGS", false)
	viper.SetDefault("SMTP_PORT", 587)

	config := &Config{
		Env: viper.GetString("ENV"),
		Server: ServerConfig{
			Port:   viper.GetString("PORT"),
			Host:   viper.GetString("HOST"),
			AppURL: viper.GetString("APP_URL"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetInt("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			DBName:      viper.GetString("DB_NAME"),
			SSLMode:     viper.GetString("DB_SSL_MODE"),
			MaxConns:    viper.GetInt("DB_MAX_CONNS"),
			MinConns:    viper.GetInt("DB_MIN_CONNS"),
			MaxIdleTime: viper.GetInt("DB_MAX_IDLE_TIME"),
		},
		Redis: RedisConfig{
			URL: viper.GetString("REDIS_URL"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Expiry: viper.GetDuration("JWT_EXPIRATION"),
		},
		SMTP: SMTPConfig{
			Host: viper.GetString("SMTP_HOST"),
			Port: viper.GetInt("SMTP_PORT"),
			User: viper.GetString("SMTP_USER"),
			Pass: viper.GetString("SMTP_PASS"),
			From: viper.GetString("SMTP_FROM"),
		},
		Cache: CacheConfig{
			TTL: viper.GetDuration("CACHE_TTL"),
		},
		Upload: UploadConfig{
			Directory: viper.GetString("UPLOADS_DIRECTORY"),
		},
		Logging: LoggingConfig{
			Level:     viper.GetString("LOG_LEVEL"),
			Directory: viper.GetString("LOGS_DIRECTORY"),
			FileLogs:  viper.GetBool("ENABLE_FILE_LOGS"),
		},
		Security: SecurityConfig{
			BcryptCost: viper.GetInt("BCRYPT_COST"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetString("ALLOW_ORIGIN"),
		},
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// DSN retorna a connection string do PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// IsProduction informa se a aplicação está em produção
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
