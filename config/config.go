package config

import (
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// Config содержит все настройки приложения
type Config struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	HTTP     HTTPConfig     `mapstructure:"http"`
}

// PostgresConfig содержит настройки для PostgreSQL
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// HTTPConfig содержит настройки для HTTP сервера
type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// LoadConfig загружает настройки из файла или переменных окружения
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Значения по умолчанию
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Если файл конфигурации не найден, используем переменные окружения
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Переменные окружения FSTR переопределяют значения конфигурации
	loadFromEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	// PostgreSQL defaults
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.username", "postgres")
	viper.SetDefault("postgres.password", "")
	viper.SetDefault("postgres.dbname", "pereval")
	viper.SetDefault("postgres.sslmode", "disable")

	// HTTP defaults
	viper.SetDefault("http.port", 8080)
}

func loadFromEnv() {
	// PostgreSQL from env
	if dbHost := os.Getenv("FSTR_DB_HOST"); dbHost != "" {
		viper.Set("postgres.host", dbHost)
	}
	if dbPort := os.Getenv("FSTR_DB_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			viper.Set("postgres.port", port)
		}
	}
	if dbName := os.Getenv("FSTR_DB_NAME"); dbName != "" {
		viper.Set("postgres.dbname", dbName)
	}
	if dbLogin := os.Getenv("FSTR_DB_LOGIN"); dbLogin != "" {
		viper.Set("postgres.username", dbLogin)
	}
	if dbPass := os.Getenv("FSTR_DB_PASS"); dbPass != "" {
		viper.Set("postgres.password", dbPass)
	}

	// HTTP from env
	if httpPort := os.Getenv("HTTP_PORT"); httpPort != "" {
		if port, err := strconv.Atoi(httpPort); err == nil {
			viper.Set("http.port", port)
		}
	}
}
