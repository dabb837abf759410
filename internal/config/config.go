package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Políticas aceitas para falha na busca de thumbnails de criativos
const (
	ThumbnailPolicyStrict  = "strict"
	ThumbnailPolicyLenient = "lenient"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Redis        Redis        `mapstructure:",squash"`
	Meta         Meta         `mapstructure:",squash"`
	Shopify      Shopify      `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	Insights     Insights     `mapstructure:",squash"`
	TokenRefresh TokenRefresh `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Redis struct {
	URL string `mapstructure:"redis_url"`
}

type Meta struct {
	BaseURL        string  `mapstructure:"meta_base_url"`
	URL            string  `mapstructure:"meta_url"`
	Version        string  `mapstructure:"meta_version"`
	AppID          string  `mapstructure:"meta_app_id"`
	AppSecret      string  `mapstructure:"meta_app_secret"`
	RateLimitRPS   float64 `mapstructure:"meta_rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"meta_rate_limit_burst"`
}

type Shopify struct {
	APIVersion string `mapstructure:"shopify_api_version"`
	OrderLimit int    `mapstructure:"shopify_order_limit"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Insights struct {
	RowLimit             int           `mapstructure:"insights_row_limit"`
	ThumbnailPolicy      string        `mapstructure:"insights_thumbnail_policy"`
	ThumbnailConcurrency int           `mapstructure:"insights_thumbnail_concurrency"`
	RequestTimeout       time.Duration `mapstructure:"insights_request_timeout"`
}

type TokenRefresh struct {
	CronSchedule string `mapstructure:"token_refresh_cron"`
	WindowDays   int    `mapstructure:"token_refresh_window_days"`
	Enabled      bool   `mapstructure:"token_refresh_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/journey?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_URL", "")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_RATE_LIMIT_RPS", 20)
	viper.SetDefault("META_RATE_LIMIT_BURST", 10)

	viper.SetDefault("SHOPIFY_API_VERSION", "2024-01")
	viper.SetDefault("SHOPIFY_ORDER_LIMIT", 250)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	// Limite de linhas da API de insights (sem paginação)
	viper.SetDefault("INSIGHTS_ROW_LIMIT", 1000)
	viper.SetDefault("INSIGHTS_THUMBNAIL_POLICY", ThumbnailPolicyStrict)
	viper.SetDefault("INSIGHTS_THUMBNAIL_CONCURRENCY", 0) // 0 = sem limite
	viper.SetDefault("INSIGHTS_REQUEST_TIMEOUT", "60s")

	viper.SetDefault("TOKEN_REFRESH_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("TOKEN_REFRESH_WINDOW_DAYS", 10)
	viper.SetDefault("TOKEN_REFRESH_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.finalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// finalize calcula os campos derivados e valida valores que o viper não valida
func (c *Config) finalize() error {
	c.Meta.URL = fmt.Sprintf("%s/%s", strings.TrimSuffix(c.Meta.BaseURL, "/"), c.Meta.Version)

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)

	switch c.Insights.ThumbnailPolicy {
	case ThumbnailPolicyStrict, ThumbnailPolicyLenient:
	case "":
		c.Insights.ThumbnailPolicy = ThumbnailPolicyStrict
	default:
		return fmt.Errorf("config: invalid insights_thumbnail_policy %q", c.Insights.ThumbnailPolicy)
	}

	if c.Insights.RowLimit <= 0 {
		c.Insights.RowLimit = 1000
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
