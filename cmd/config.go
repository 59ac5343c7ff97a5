package cmd

import (
	"errors"
	"fmt"
	"time"

	"cafeteria/internal/pkg/errs"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	KafkaHost               string
	KafkaNotificationsTopic string
	KafkaBatchTimeout       time.Duration
	KafkaAsync              bool
	LogLevel                string
	SalesReportSchedule     string
	Storage                 string
}

// DSN returns the postgres connection string.
func (c Config) DSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}

// UsesKafka reports whether notifications go to the broker.
func (c Config) UsesKafka() bool {
	return c.KafkaHost != ""
}

// Validate reports every missing or invalid setting at once.
func (c Config) Validate() error {
	var problems []error

	if c.HTTPPort == "" {
		problems = append(problems, errs.NewValueIsRequiredError("HTTP_PORT"))
	}

	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		for name, value := range map[string]string{
			"DB_HOST": c.DBHost,
			"DB_PORT": c.DBPort,
			"DB_USER": c.DBUser,
			"DB_NAME": c.DBName,
		} {
			if value == "" {
				problems = append(problems, errs.NewValueIsRequiredError(name))
			}
		}
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("STORAGE",
			fmt.Errorf("%q is neither %q nor %q", c.Storage, StoragePostgres, StorageMemory)))
	}

	if c.UsesKafka() && c.KafkaNotificationsTopic == "" {
		problems = append(problems, errs.NewValueIsRequiredError("KAFKA_NOTIFICATIONS_TOPIC"))
	}
	if c.KafkaBatchTimeout < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("KAFKA_BATCH_TIMEOUT",
			fmt.Errorf("%s is negative", c.KafkaBatchTimeout)))
	}

	return errors.Join(problems...)
}
