package cmd

import (
	"fmt"
	"strings"

	"deliveryportal/internal/core/domain/services"
	"deliveryportal/internal/jobs"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	LogLevel               string
	JWTSecret              string
	KafkaHost              string
	KafkaOrderChangedTopic string
	FeeBase                decimal.Decimal
	FeeVariableCeiling     decimal.Decimal
	StatsJobSchedule       string
}

// LoadConfig reads the configuration from the environment, falling back to defaults.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "delivery_portal")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("KAFKA_HOST", "")
	v.SetDefault("KAFKA_ORDER_CHANGED_TOPIC", "order.status.changed")
	v.SetDefault("FEE_BASE", services.DefaultFeeBase.String())
	v.SetDefault("FEE_VARIABLE_CEILING", services.DefaultFeeVariableCeiling.String())
	v.SetDefault("STATS_JOB_SCHEDULE", jobs.DefaultStatsSchedule)

	feeBase, err := decimal.NewFromString(v.GetString("FEE_BASE"))
	if err != nil {
		return Config{}, fmt.Errorf("FEE_BASE: %w", err)
	}
	feeCeiling, err := decimal.NewFromString(v.GetString("FEE_VARIABLE_CEILING"))
	if err != nil {
		return Config{}, fmt.Errorf("FEE_VARIABLE_CEILING: %w", err)
	}

	cfg := Config{
		HTTPPort:               v.GetString("HTTP_PORT"),
		DBHost:                 v.GetString("DB_HOST"),
		DBPort:                 v.GetString("DB_PORT"),
		DBUser:                 v.GetString("DB_USER"),
		DBPassword:             v.GetString("DB_PASSWORD"),
		DBName:                 v.GetString("DB_NAME"),
		DBSslMode:              v.GetString("DB_SSLMODE"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		KafkaHost:              v.GetString("KAFKA_HOST"),
		KafkaOrderChangedTopic: v.GetString("KAFKA_ORDER_CHANGED_TOPIC"),
		FeeBase:                feeBase,
		FeeVariableCeiling:     feeCeiling,
		StatsJobSchedule:       v.GetString("STATS_JOB_SCHEDULE"),
	}

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// DSN renders the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas. Empty means publishing is disabled.
func (c Config) KafkaBrokers() []string {
	brokers := make([]string, 0)
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
