package datasource

import (
	"testing"
	"time"

	"github.com/danyyudha/warehouse-ops-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderFixture(orderID string) domain.OrderRecord {
	return domain.OrderRecord{
		OrderID:     orderID,
		WarehouseID: "W1",
		Team:        domain.TeamBrand,
		OrderDate:   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		StageDurations: map[string]float64{
			domain.StagePicking: 4,
		},
		Fulfilled: true,
	}
}

func TestRecordStore_Replace(t *testing.T) {
	store := NewRecordStore()

	// Tabela recém-criada: nada carregado
	status := store.Status()
	assert.False(t, status.Loaded)
	assert.Equal(t, 0, status.RowCount)
	assert.Empty(t, store.Snapshot())

	store.Replace(SourceSample, "batch001", []domain.OrderRecord{orderFixture("ORD-0001"), orderFixture("ORD-0002")})

	status = store.Status()
	assert.True(t, status.Loaded)
	assert.Equal(t, SourceSample, status.Source)
	assert.Equal(t, "batch001", status.BatchID)
	assert.Equal(t, 2, status.RowCount)
	assert.False(t, status.LastReload.IsZero())

	// A substituição é total: a tabela anterior não sobrevive em parte alguma
	store.Replace(SourceFile, "batch002", []domain.OrderRecord{orderFixture("ORD-0003")})

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "ORD-0003", snapshot[0].OrderID)
	assert.Equal(t, SourceFile, store.Status().Source)
}

func TestRecordStore_SnapshotIsACopy(t *testing.T) {
	store := NewRecordStore()
	store.Replace(SourceSample, "batch001", []domain.OrderRecord{orderFixture("ORD-0001")})

	snapshot := store.Snapshot()
	snapshot[0].OrderID = "MUTATED"

	// Mutação no snapshot não vaza para a tabela
	fresh := store.Snapshot()
	require.Len(t, fresh, 1)
	assert.Equal(t, "ORD-0001", fresh[0].OrderID)
}

func TestNormalize(t *testing.T) {
	valid := orderFixture("ORD-0001")

	missingID := orderFixture("")

	badDates := orderFixture("ORD-0003")
	actual := badDates.OrderDate.AddDate(0, 0, -1)
	badDates.ActualDelivery = &actual

	validRecords, quarantined := Normalize([]domain.OrderRecord{valid, missingID, badDates})

	require.Len(t, validRecords, 1)
	assert.Equal(t, "ORD-0001", validRecords[0].OrderID)

	require.Len(t, quarantined, 2)
	assert.Equal(t, "", quarantined[0].OrderID)
	assert.Equal(t, "ORD-0003", quarantined[1].OrderID)
}
