package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Media    Media
	Telegram Telegram
	Minio    Minio
	Log      Log
}

type Server struct {
	Port             string
	GinMode          string
	CORSAllowOrigins []string
}

type Database struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Auth struct {
	JWTSecret  string
	SessionTTL time.Duration
}

// Media describes where uploaded files live. BaseDir is the project root;
// Dir is the media root relative to it.
type Media struct {
	BaseDir string
	Dir     string
}

type Telegram struct {
	BotToken    string
	AdminChatID string
	APIURL      string
	Timeout     time.Duration
}

// Enabled reports whether both credentials needed by the Bot API are present.
func (t Telegram) Enabled() bool {
	return t.BotToken != "" && t.AdminChatID != ""
}

type Minio struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
}

func (m Minio) Enabled() bool {
	return m.Endpoint != "" && m.Bucket != ""
}

type Log struct {
	Level string
	File  string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	wd, _ := os.Getwd()
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("BASE_DIR", wd)
	viper.SetDefault("MEDIA_DIR", "media")
	viper.SetDefault("TELEGRAM_API_URL", "https://api.telegram.org")
	viper.SetDefault("TELEGRAM_TIMEOUT_SECONDS", 10)
	viper.SetDefault("MINIO_SECURE", true)
	viper.SetDefault("LOG_LEVEL", "info")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	config.Server.CORSAllowOrigins = splitList(viper.GetString("CORS_ALLOW_ORIGINS"))

	config.Database.Driver = strings.ToLower(viper.GetString("DATABASE_DRIVER"))
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.SessionTTL = time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour

	config.Media.BaseDir = viper.GetString("BASE_DIR")
	config.Media.Dir = viper.GetString("MEDIA_DIR")

	config.Telegram.BotToken = viper.GetString("TELEGRAM_BOT_TOKEN")
	config.Telegram.AdminChatID = viper.GetString("TELEGRAM_ADMIN_CHAT_ID")
	config.Telegram.APIURL = strings.TrimRight(viper.GetString("TELEGRAM_API_URL"), "/")
	config.Telegram.Timeout = time.Duration(viper.GetInt("TELEGRAM_TIMEOUT_SECONDS")) * time.Second

	config.Minio.Endpoint = viper.GetString("MINIO_ENDPOINT")
	config.Minio.AccessKey = viper.GetString("MINIO_ACCESS_KEY")
	config.Minio.SecretKey = viper.GetString("MINIO_SECRET_KEY")
	config.Minio.Bucket = viper.GetString("MINIO_BUCKET")
	config.Minio.Secure = viper.GetBool("MINIO_SECURE")

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.File = viper.GetString("LOG_FILE")

	if config.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	// Secrets stay out of the log.
	log.Info().
		Str("port", config.Server.Port).
		Str("dbDriver", config.Database.Driver).
		Str("dbHost", config.Database.Host).
		Str("dbName", config.Database.Name).
		Str("baseDir", config.Media.BaseDir).
		Str("mediaDir", config.Media.Dir).
		Bool("telegram", config.Telegram.Enabled()).
		Bool("minio", config.Minio.Enabled()).
		Msg("Config loaded")
	return &config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
