package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	StorageDriverYAML   = "yaml"
	StorageDriverMySQL  = "mysql"
	StorageDriverSQLite = "sqlite"
)

type Config struct {
	Learner  string         `mapstructure:"learner"`
	Quiz     QuizConfig     `mapstructure:"quiz"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
}

type QuizConfig struct {
	TimerEnabled      bool    `mapstructure:"timer_enabled"`
	TimerSeconds      int     `mapstructure:"timer_seconds" validate:"min=5,max=60"`
	HintEnabled       bool    `mapstructure:"hint_enabled"`
	TargetQuestions   int     `mapstructure:"target_questions" validate:"min=1"`
	TargetSuccessRate float64 `mapstructure:"target_success_rate" validate:"gt=0,lt=1"`
}

type StorageConfig struct {
	Driver     string `mapstructure:"driver" validate:"oneof=yaml mysql sqlite"`
	Directory  string `mapstructure:"directory" validate:"required_if=Driver yaml"`
	SQLitePath string `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	RetryAttempts   uint              `mapstructure:"retry_attempts"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/spacetimes")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("quiz.timer_enabled", true)
	v.SetDefault("quiz.timer_seconds", 15)
	v.SetDefault("quiz.hint_enabled", true)
	v.SetDefault("quiz.target_questions", 15)
	v.SetDefault("quiz.target_success_rate", 0.8)
	v.SetDefault("storage.driver", StorageDriverYAML)
	v.SetDefault("storage.directory", filepath.Join("data", "learners"))
	v.SetDefault("storage.sqlite_path", filepath.Join("data", "spacetimes.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "spacetimes")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.retry_attempts", 3)

	if err := v.BindEnv("learner", "SPACETIMES_LEARNER"); err != nil {
		return nil, fmt.Errorf("failed to bind SPACETIMES_LEARNER environment variable: %w", err)
	}
	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
