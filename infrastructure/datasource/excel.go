package datasource

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/danyyudha/warehouse-ops-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Colunas reconhecidas na planilha de pedidos. Os cabeçalhos são comparados
// sem diferenciar maiúsculas; colunas extras são ignoradas.
const (
	columnOrderID          = "order_id"
	columnWarehouseID      = "warehouse_id"
	columnWarehouseName    = "warehouse_name"
	columnTeam             = "team"
	columnOrderDate        = "order_date"
	columnExpectedDelivery = "expected_delivery_date"
	columnActualDelivery   = "actual_delivery_date"
	columnFulfilled        = "is_fulfilled"
)

// Formatos de data aceitos nas células da planilha
var excelDateFormats = []string{
	time.DateOnly,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01-02-06",          // formato de data default do Excel
	"1/2/06 15:04",      // formato de data+hora default do Excel
}

// QuarantinedRow registra uma linha da planilha rejeitada na normalização,
// com o motivo, para ser devolvida na resposta do upload.
type QuarantinedRow struct {
	RowNumber int    `json:"row_number"`
	Reason    string `json:"reason"`
}

// ParseWorkbook lê a primeira aba de uma planilha .xlsx e converte cada linha
// em um OrderRecord normalizado. Linhas que violam a forma canônica vão para
// a quarentena em vez de interromper a importação.
func ParseWorkbook(r io.Reader) ([]domain.OrderRecord, []QuarantinedRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("planilha sem abas")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("planilha sem linhas de dados")
	}

	columns := make(map[string]int)
	for idx, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = idx
	}

	for _, required := range []string{columnOrderID, columnWarehouseID, columnOrderDate} {
		if _, ok := columns[required]; !ok {
			return nil, nil, fmt.Errorf("coluna obrigatória ausente: %s", required)
		}
	}

	records := make([]domain.OrderRecord, 0, len(rows)-1)
	quarantined := make([]QuarantinedRow, 0)

	for i, row := range rows[1:] {
		rowNumber := i + 2 // 1-based, pulando o cabeçalho

		record, err := parseRow(row, columns)
		if err != nil {
			quarantined = append(quarantined, QuarantinedRow{RowNumber: rowNumber, Reason: err.Error()})
			continue
		}

		if !record.Valid() {
			quarantined = append(quarantined, QuarantinedRow{
				RowNumber: rowNumber,
				Reason:    "registro viola a forma canônica (campos obrigatórios ou datas inconsistentes)",
			})
			continue
		}

		records = append(records, *record)
	}

	return records, quarantined, nil
}

func parseRow(row []string, columns map[string]int) (*domain.OrderRecord, error) {
	record := &domain.OrderRecord{
		OrderID:       cellValue(row, columns, columnOrderID),
		WarehouseID:   cellValue(row, columns, columnWarehouseID),
		WarehouseName: cellValue(row, columns, columnWarehouseName),
		Team:          cellValue(row, columns, columnTeam),
	}

	orderDate, err := parseCellDate(cellValue(row, columns, columnOrderDate))
	if err != nil {
		return nil, fmt.Errorf("order_date inválida: %v", err)
	}
	if orderDate == nil {
		return nil, fmt.Errorf("order_date ausente")
	}
	record.OrderDate = *orderDate

	expected, err := parseCellDate(cellValue(row, columns, columnExpectedDelivery))
	if err != nil {
		return nil, fmt.Errorf("expected_delivery_date inválida: %v", err)
	}
	if expected != nil {
		record.ExpectedDelivery = *expected
	}

	actual, err := parseCellDate(cellValue(row, columns, columnActualDelivery))
	if err != nil {
		return nil, fmt.Errorf("actual_delivery_date inválida: %v", err)
	}
	record.ActualDelivery = actual

	record.StageDurations = make(map[string]float64, len(domain.CanonicalStages))
	for _, stage := range domain.CanonicalStages {
		raw := cellValue(row, columns, stage+"_hours")
		if raw == "" {
			continue
		}

		hours, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err != nil || hours < 0 {
			return nil, fmt.Errorf("duração inválida para a etapa %s: %q", stage, raw)
		}
		record.StageDurations[stage] = hours
	}

	record.Fulfilled = parseCellBool(cellValue(row, columns, columnFulfilled))

	return record, nil
}

func cellValue(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseCellDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	for _, format := range excelDateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("formato de data não reconhecido: %q", raw)
}

func parseCellBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "sim":
		return true
	}
	return false
}

// WriteWorkbook monta uma planilha .xlsx com a tabela de pedidos atual, no
// mesmo layout aceito pelo upload.
func WriteWorkbook(records []domain.OrderRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	sheet := f.GetSheetName(0)

	headers := []string{
		columnOrderID,
		columnWarehouseID,
		columnWarehouseName,
		columnTeam,
		columnOrderDate,
		columnExpectedDelivery,
		columnActualDelivery,
	}
	for _, stage := range domain.CanonicalStages {
		headers = append(headers, stage+"_hours")
	}
	headers = append(headers, columnFulfilled)

	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}

	for i, record := range records {
		actual := ""
		if record.ActualDelivery != nil {
			actual = record.ActualDelivery.Format(time.DateOnly)
		}

		row := []interface{}{
			record.OrderID,
			record.WarehouseID,
			record.WarehouseName,
			record.Team,
			record.OrderDate.Format(time.DateOnly),
			record.ExpectedDelivery.Format(time.DateOnly),
			actual,
		}
		for _, stage := range domain.CanonicalStages {
			row = append(row, record.StageDurations[stage])
		}
		row = append(row, record.Fulfilled)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
