package datasource

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/danyyudha/warehouse-ops-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseWorkbook(t *testing.T) {
	rows := [][]interface{}{
		{"order_id", "warehouse_id", "warehouse_name", "team", "order_date", "expected_delivery_date", "actual_delivery_date", "receiving_hours", "picking_hours", "packing_hours", "shipping_hours", "is_fulfilled"},
		{"ORD-0001", "W1", "Warehouse #1", "Brand Team", "2026-07-01", "2026-07-03", "2026-07-03", "2", "4", "1", "41", "true"},
		// Em trânsito: sem data de entrega real e não atendido
		{"ORD-0002", "W2", "Warehouse #2", "Performance Team", "2026-07-02", "2026-07-05", "", "1", "2", "1", "60", "false"},
		// Quarentena: entrega real antes da data do pedido
		{"ORD-0003", "W1", "Warehouse #1", "Brand Team", "2026-07-10", "2026-07-12", "2026-07-01", "1", "1", "1", "24", "true"},
		// Quarentena: data do pedido ilegível
		{"ORD-0004", "W1", "Warehouse #1", "Brand Team", "not-a-date", "2026-07-12", "", "1", "1", "1", "24", "false"},
	}

	records, quarantined, err := ParseWorkbook(workbookBytes(t, rows))
	require.NoError(t, err)

	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "ORD-0001", first.OrderID)
	assert.Equal(t, "W1", first.WarehouseID)
	assert.Equal(t, "Brand Team", first.Team)
	assert.True(t, first.Fulfilled)
	require.NotNil(t, first.ActualDelivery)
	assert.Equal(t, 48.0, first.HandlingHours())
	assert.Equal(t, 4.0, first.StageDurations[domain.StagePicking])

	second := records[1]
	assert.Nil(t, second.ActualDelivery)
	assert.False(t, second.Fulfilled)

	require.Len(t, quarantined, 2)
	assert.Equal(t, 4, quarantined[0].RowNumber)
	assert.Equal(t, 5, quarantined[1].RowNumber)
	assert.NotEmpty(t, quarantined[0].Reason)
}

func TestParseWorkbook_MissingRequiredColumn(t *testing.T) {
	rows := [][]interface{}{
		{"warehouse_id", "order_date"},
		{"W1", "2026-07-01"},
	}

	_, _, err := ParseWorkbook(workbookBytes(t, rows))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order_id")
}

func TestParseWorkbook_NotASpreadsheet(t *testing.T) {
	_, _, err := ParseWorkbook(bytes.NewBufferString("definitivamente não é um xlsx"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestWriteWorkbookRoundTrip(t *testing.T) {
	original, err := NewSampleSource(3, 20, 42).Load(context.Background())
	require.NoError(t, err)

	workbook, err := WriteWorkbook(original)
	require.NoError(t, err)

	buf, err := workbook.WriteToBuffer()
	require.NoError(t, err)

	parsed, quarantined, err := ParseWorkbook(buf)
	require.NoError(t, err)

	assert.Empty(t, quarantined)
	require.Len(t, parsed, len(original))

	for i := range original {
		assert.Equal(t, original[i].OrderID, parsed[i].OrderID)
		assert.Equal(t, original[i].WarehouseID, parsed[i].WarehouseID)
		assert.Equal(t, original[i].Team, parsed[i].Team)
		assert.Equal(t, original[i].Fulfilled, parsed[i].Fulfilled)
		assert.Equal(t, original[i].OrderDate.Format(time.DateOnly), parsed[i].OrderDate.Format(time.DateOnly))
	}
}
