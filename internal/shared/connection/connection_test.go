package connection_test

import (
	"testing"

	"go-school/internal/shared/config"
	"go-school/internal/shared/connection"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	dsn := connection.DSN(config.DatabaseConfig{
		Host:     "db",
		User:     "school",
		Password: "secret",
		Name:     "leave",
		Port:     "5432",
		SSLMode:  "disable",
	})

	assert.Equal(t, "host=db user=school password=secret dbname=leave port=5432 sslmode=disable", dsn)
}
