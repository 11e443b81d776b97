package datasource

import (
	"context"
	"testing"

	"github.com/danyyudha/warehouse-ops-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleSource_Load(t *testing.T) {
	source := NewSampleSource(5, 200, 42)

	records, err := source.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 200)

	warehouses := make(map[string]bool)
	for _, record := range records {
		warehouses[record.WarehouseID] = true

		// Todo registro gerado respeita a forma canônica
		assert.True(t, record.Valid(), "registro inválido: %s", record.OrderID)
		assert.NotEmpty(t, record.Team)
		assert.Len(t, record.StageDurations, len(domain.CanonicalStages))

		// Pedido atendido sempre tem data de entrega real
		if record.Fulfilled {
			assert.NotNil(t, record.ActualDelivery)
		}
	}

	assert.Len(t, warehouses, 5)
}

func TestSampleSource_LoadIsDeterministic(t *testing.T) {
	first, err := NewSampleSource(5, 50, 42).Load(context.Background())
	require.NoError(t, err)

	second, err := NewSampleSource(5, 50, 42).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].OrderID, second[i].OrderID)
		assert.Equal(t, first[i].WarehouseID, second[i].WarehouseID)
		assert.Equal(t, first[i].Team, second[i].Team)
		assert.Equal(t, first[i].StageDurations, second[i].StageDurations)
		assert.Equal(t, first[i].Fulfilled, second[i].Fulfilled)
	}
}

func TestSampleSource_DifferentSeeds(t *testing.T) {
	first, err := NewSampleSource(5, 50, 1).Load(context.Background())
	require.NoError(t, err)

	second, err := NewSampleSource(5, 50, 2).Load(context.Background())
	require.NoError(t, err)

	// Seeds diferentes produzem tabelas diferentes
	different := false
	for i := range first {
		if first[i].WarehouseID != second[i].WarehouseID || first[i].Fulfilled != second[i].Fulfilled {
			different = true
			break
		}
	}
	assert.True(t, different)
}
