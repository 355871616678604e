package utils

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Email    EmailConfig
	SMS      SMSConfig
	Token    TokenConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type SMSConfig struct {
	GatewayURL string
}

type TokenConfig struct {
	Length            int
	ExpiryMinutes     int
	EnabledAliasTypes []string
	RegisterNewUsers  bool
	Store             string // "postgres" or "redis"
	EmailSubject      string
	EmailPlaintext    string
	MobileMessage     string
}

// AliasTypeEnabled reports whether the channel is allowed by
// ENABLED_ALIAS_TYPES. Comparison is case-insensitive.
func (c TokenConfig) AliasTypeEnabled(aliasType string) bool {
	for _, enabled := range c.EnabledAliasTypes {
		if strings.EqualFold(enabled, aliasType) {
			return true
		}
	}
	return false
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("TOKEN_LENGTH", 6)
	viper.SetDefault("TOKEN_EXPIRY_MINUTES", 15)
	viper.SetDefault("ENABLED_ALIAS_TYPES", "EMAIL,MOBILE")
	viper.SetDefault("REGISTER_NEW_USERS", false)
	viper.SetDefault("TOKEN_STORE", "postgres")
	viper.SetDefault("EMAIL_SUBJECT", "Your Login Token")
	viper.SetDefault("EMAIL_PLAINTEXT", "Enter this token to sign in: %token%")
	viper.SetDefault("MOBILE_MESSAGE", "Use this code to log in: %token%")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		SMS: SMSConfig{
			GatewayURL: viper.GetString("SMS_GATEWAY_URL"),
		},
		Token: TokenConfig{
			Length:            viper.GetInt("TOKEN_LENGTH"),
			ExpiryMinutes:     viper.GetInt("TOKEN_EXPIRY_MINUTES"),
			EnabledAliasTypes: splitAliasTypes(viper.GetString("ENABLED_ALIAS_TYPES")),
			RegisterNewUsers:  viper.GetBool("REGISTER_NEW_USERS"),
			Store:             viper.GetString("TOKEN_STORE"),
			EmailSubject:      viper.GetString("EMAIL_SUBJECT"),
			EmailPlaintext:    viper.GetString("EMAIL_PLAINTEXT"),
			MobileMessage:     viper.GetString("MOBILE_MESSAGE"),
		},
	}

	return config, nil
}

func splitAliasTypes(raw string) []string {
	var types []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			types = append(types, part)
		}
	}
	return types
}
