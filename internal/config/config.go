package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	Redis     RedisConfig     `mapstructure:"redis"     validate:"required"`
	RabbitMQ  RabbitMQConfig  `mapstructure:"rabbitmq"  validate:"required"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// JWTSecret signs both access and refresh tokens. Must be at least
	// 32 characters; there is no default, it has to come from the
	// environment (NEXOTIME_AUTH_JWT_SECRET) or a config file.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is the access token lifetime in minutes.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// RefreshTokenLifetimeMinutes is the refresh token lifetime in minutes.
	RefreshTokenLifetimeMinutes int `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`

	// BCryptCost is the bcrypt work factor used when hashing passwords.
	BCryptCost int `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
}

// RedisConfig contains settings for the Redis connection used for
// short-lived Telegram link codes.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RabbitMQConfig contains settings for the message broker carrying
// reminder events from the API server to the bot.
type RabbitMQConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// TelegramConfig contains settings for the Telegram bot process.
// The API server does not need these; only cmd/bot validates them.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
}

// SchedulerConfig contains settings for the reminder scheduler.
type SchedulerConfig struct {
	// Timezone is the IANA timezone name reminders are evaluated in.
	Timezone string `mapstructure:"timezone" validate:"required"`
}
