package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructDatabaseURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		dbName   string
		expected string
	}{
		{"no database name", "postgres://u:p@localhost:5432", "", "postgres://u:p@localhost:5432"},
		{"appends name and sslmode", "postgres://u:p@localhost:5432/", "sportsbook", "postgres://u:p@localhost:5432/sportsbook?sslmode=disable"},
		{"keeps query params", "postgres://u:p@localhost:5432?connect_timeout=5", "sportsbook", "postgres://u:p@localhost:5432/sportsbook?connect_timeout=5&sslmode=disable"},
		{"keeps explicit sslmode", "postgres://u:p@db?sslmode=require", "sportsbook", "postgres://u:p@db/sportsbook?sslmode=require"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConstructDatabaseURL(tt.baseURL, tt.dbName))
		})
	}
}
