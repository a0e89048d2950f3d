package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/infrastructure/store"
	"github.com/jhoicas/inventario-ledger/pkg/config"
)

func TestOpen_Memory(t *testing.T) {
	s, err := store.Open(context.Background(), config.DBConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Items.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.NotNil(t, s.Tx)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := store.Open(context.Background(), config.DBConfig{Driver: "sqlite"})
	assert.Error(t, err)
}
