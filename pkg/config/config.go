package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Google     GoogleConfig
	S3         S3Config
	Lighthouse LighthouseConfig
	SMTP       SMTPConfig
	RateLimit  RateLimitConfig
	College    CollegeConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

type JWTConfig struct {
	AccessSecret       string
	RefreshSecret      string
	AccessExpiryHours  int
	RefreshExpiryHours int
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

type S3Config struct {
	Region      string
	Bucket      string
	AccessKey   string
	SecretKey   string
	ImageFolder string
}

type LighthouseConfig struct {
	APIKey     string
	NodeURL    string
	GatewayURL string
}

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

type RateLimitConfig struct {
	Requests      int
	WindowSeconds int
}

type CollegeConfig struct {
	Domain       string
	ClientOrigin string
}

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func (j *JWTConfig) AccessExpiry() time.Duration {
	return time.Duration(j.AccessExpiryHours) * time.Hour
}

func (j *JWTConfig) RefreshExpiry() time.Duration {
	return time.Duration(j.RefreshExpiryHours) * time.Hour
}

func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s *ServerConfig) IsProduction() bool {
	return s.Env == "production"
}

func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 4000)
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "hostel")
	v.SetDefault("DATABASE_PASSWORD", "hostel_secret")
	v.SetDefault("DATABASE_NAME", "hostel")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("JWT_REFRESH_SECRET", "")
	v.SetDefault("JWT_EXPIRY_HOURS", 168)         // 7 days
	v.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 720) // 30 days
	v.SetDefault("GOOGLE_CALLBACK_URL", "http://localhost:4000/api/auth/google/callback")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("S3_IMAGE_FOLDER", "IMAGE")
	v.SetDefault("LIGHTHOUSE_NODE_URL", "https://node.lighthouse.storage")
	v.SetDefault("LIGHTHOUSE_GATEWAY_URL", "https://gateway.lighthouse.storage/ipfs")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 900)
	v.SetDefault("COLLEGE_DOMAIN", "iiitn.ac.in")
	v.SetDefault("CLIENT_ORIGIN", "http://localhost:5173")

	// Load from .env file if present
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// Override with environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The refresh secret falls back to a derivation of the access secret,
	// matching the original deployment's JWT_REFRESH_SECRET default.
	refreshSecret := v.GetString("JWT_REFRESH_SECRET")
	if refreshSecret == "" {
		refreshSecret = v.GetString("JWT_SECRET") + "_refresh"
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
			Env:  v.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DATABASE_HOST"),
			Port:     v.GetInt("DATABASE_PORT"),
			User:     v.GetString("DATABASE_USER"),
			Password: v.GetString("DATABASE_PASSWORD"),
			Name:     v.GetString("DATABASE_NAME"),
			SSLMode:  v.GetString("DATABASE_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		JWT: JWTConfig{
			AccessSecret:       v.GetString("JWT_SECRET"),
			RefreshSecret:      refreshSecret,
			AccessExpiryHours:  v.GetInt("JWT_EXPIRY_HOURS"),
			RefreshExpiryHours: v.GetInt("JWT_REFRESH_EXPIRY_HOURS"),
		},
		Google: GoogleConfig{
			ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
			CallbackURL:  v.GetString("GOOGLE_CALLBACK_URL"),
		},
		S3: S3Config{
			Region:      v.GetString("AWS_REGION"),
			Bucket:      v.GetString("S3_BUCKET"),
			AccessKey:   v.GetString("AWS_ACCESS_KEY_ID"),
			SecretKey:   v.GetString("AWS_SECRET_ACCESS_KEY"),
			ImageFolder: v.GetString("S3_IMAGE_FOLDER"),
		},
		Lighthouse: LighthouseConfig{
			APIKey:     v.GetString("LIGHTHOUSE_API_KEY"),
			NodeURL:    v.GetString("LIGHTHOUSE_NODE_URL"),
			GatewayURL: v.GetString("LIGHTHOUSE_GATEWAY_URL"),
		},
		SMTP: SMTPConfig{
			Host: v.GetString("SMTP_HOST"),
			Port: v.GetInt("SMTP_PORT"),
			User: v.GetString("SMTP_USER"),
			Pass: v.GetString("SMTP_PASS"),
			From: v.GetString("SMTP_FROM"),
		},
		RateLimit: RateLimitConfig{
			Requests:      v.GetInt("RATE_LIMIT_REQUESTS"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		College: CollegeConfig{
			Domain:       v.GetString("COLLEGE_DOMAIN"),
			ClientOrigin: v.GetString("CLIENT_ORIGIN"),
		},
	}

	return cfg, nil
}
