package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(check))
	assert.True(t, isCheckViolation(check))
	assert.False(t, isCheckViolation(errors.New("timeout")))
}

func TestErrorCodes_SoloErroresDePostgres(t *testing.T) {
	// Un mensaje que contiene el código no es una violación.
	assert.False(t, isUniqueViolation(errors.New("producto 23505 no encontrado")))
	assert.False(t, isCheckViolation(fmt.Errorf("monto 23514: %w", errors.New("timeout"))))
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name          string
		limit, offset int
		want          string
	}{
		{"sin límite", 0, 0, "SELECT id FROM t"},
		{"límite", 10, 0, "SELECT id FROM t LIMIT 10"},
		{"límite y offset", 10, 20, "SELECT id FROM t LIMIT 10 OFFSET 20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _, err := paginate(psql.Select("id").From("t"), tt.limit, tt.offset).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
		})
	}
}
