package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Dashboard   Dashboard   `mapstructure:",squash"`
	SampleData  SampleData  `mapstructure:",squash"`
	RefreshSync RefreshSync `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Dashboard controla o comportamento padrão das consultas do dashboard
type Dashboard struct {
	DataSource   string `mapstructure:"dashboard_data_source"`  // database | file | sample
	LookbackDays int    `mapstructure:"dashboard_lookback_days"` // janela padrão de datas
	DefaultTeam  string `mapstructure:"dashboard_default_team"`
}

// SampleData parametriza o gerador de dados de demonstração
type SampleData struct {
	Warehouses int   `mapstructure:"sample_data_warehouses"`
	Orders     int   `mapstructure:"sample_data_orders"`
	Seed       int64 `mapstructure:"sample_data_seed"`
}

// RefreshSync parametriza a recarga agendada da tabela de pedidos
type RefreshSync struct {
	CronSchedule string `mapstructure:"refresh_sync_cron"`
	Enabled      bool   `mapstructure:"refresh_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/warehouse_ops")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("DASHBOARD_DATA_SOURCE", "database")
	viper.SetDefault("DASHBOARD_LOOKBACK_DAYS", 30) // janela padrão de 30 dias, como no dashboard original
	viper.SetDefault("DASHBOARD_DEFAULT_TEAM", "all-teams")

	viper.SetDefault("SAMPLE_DATA_WAREHOUSES", 5)
	viper.SetDefault("SAMPLE_DATA_ORDERS", 200)
	viper.SetDefault("SAMPLE_DATA_SEED", 42)

	// Defaults para a recarga agendada da tabela
	viper.SetDefault("REFRESH_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("REFRESH_SYNC_ENABLED", false)

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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile carrega o arquivo .env procurando nas localizações usuais
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
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
