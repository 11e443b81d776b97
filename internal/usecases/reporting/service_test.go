package reporting

import (
	"fmt"
	"testing"
	"time"

	"github.com/danyyudha/warehouse-ops-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func makeRecord(orderID, warehouseID, team string, orderDate time.Time, stages map[string]float64, fulfilled bool, delayHours float64) domain.OrderRecord {
	record := domain.OrderRecord{
		OrderID:        orderID,
		WarehouseID:    warehouseID,
		WarehouseName:  "Warehouse " + warehouseID,
		Team:           team,
		OrderDate:      orderDate,
		StageDurations: stages,
		Fulfilled:      fulfilled,
	}

	handling := 0.0
	for _, hours := range stages {
		handling += hours
	}
	record.ExpectedDelivery = orderDate.Add(time.Duration(handling * float64(time.Hour)))

	if fulfilled {
		actual := record.ExpectedDelivery.Add(time.Duration(delayHours * float64(time.Hour)))
		record.ActualDelivery = &actual
	}

	return record
}

func TestService_ComputeMetrics(t *testing.T) {
	service := &Service{}
	baseDate := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		records  []domain.OrderRecord
		validate func(t *testing.T, aggregate *domain.WarehouseMetrics, warehouses []*domain.WarehouseMetrics)
	}{
		{
			name: "Três pedidos em um armazém - médias e percentuais corretos",
			records: []domain.OrderRecord{
				// manuseio 10h, entregue no prazo
				makeRecord("ORD-0001", "W1", domain.TeamBrand, baseDate,
					map[string]float64{domain.StageReceiving: 2, domain.StagePicking: 3, domain.StagePacking: 1, domain.StageShipping: 4}, true, 0),
				// manuseio 12h, entregue com 6h de atraso
				makeRecord("ORD-0002", "W1", domain.TeamBrand, baseDate.AddDate(0, 0, 1),
					map[string]float64{domain.StageReceiving: 2, domain.StagePicking: 4, domain.StagePacking: 2, domain.StageShipping: 4}, true, 6),
				// manuseio 14h, entregue no prazo
				makeRecord("ORD-0003", "W1", domain.TeamBrand, baseDate.AddDate(0, 0, 2),
					map[string]float64{domain.StageReceiving: 3, domain.StagePicking: 5, domain.StagePacking: 2, domain.StageShipping: 4}, true, 0),
			},
			validate: func(t *testing.T, aggregate *domain.WarehouseMetrics, warehouses []*domain.WarehouseMetrics) {
				require.Len(t, warehouses, 1)

				w1 := warehouses[0]
				assert.Equal(t, "W1", w1.WarehouseID)
				assert.Equal(t, 3, w1.OrderCount)
				assert.Equal(t, 12.0, w1.AvgHandlingTime.Value)
				assert.False(t, w1.AvgHandlingTime.NoData)

				// 1 atrasado entre 3 entregues
				assert.InDelta(t, 33.3, w1.DelayPercentage.Value, 0.01)
				assert.Equal(t, 100.0, w1.FulfillmentRate.Value)

				// O agregado de um único armazém espelha suas métricas
				assert.Equal(t, domain.AggregateWarehouseID, aggregate.WarehouseID)
				assert.Equal(t, w1.AvgHandlingTime.Value, aggregate.AvgHandlingTime.Value)
			},
		},
		{
			name: "Pedido não atendido não conta nas duas pontas do percentual de atraso",
			records: []domain.OrderRecord{
				makeRecord("ORD-0001", "W1", domain.TeamBrand, baseDate,
					map[string]float64{domain.StageShipping: 10}, true, 12),
				makeRecord("ORD-0002", "W1", domain.TeamBrand, baseDate,
					map[string]float64{domain.StageShipping: 10}, true, 0),
				// ainda em trânsito, sem data de entrega real
				makeRecord("ORD-0003", "W1", domain.TeamBrand, baseDate,
					map[string]float64{domain.StageShipping: 10}, false, 0),
			},
			validate: func(t *testing.T, aggregate *domain.WarehouseMetrics, warehouses []*domain.WarehouseMetrics) {
				require.Len(t, warehouses, 1)

				// 1 atrasado entre 2 com entrega real, não entre 3 pedidos
				assert.Equal(t, 50.0, warehouses[0].DelayPercentage.Value)

				// 2 atendidos entre 3 no total
				assert.InDelta(t, 66.7, warehouses[0].FulfillmentRate.Value, 0.01)
			},
		},
		{
			name:    "Recorte vazio - agregado inteiro sem dados",
			records: []domain.OrderRecord{},
			validate: func(t *testing.T, aggregate *domain.WarehouseMetrics, warehouses []*domain.WarehouseMetrics) {
				assert.Empty(t, warehouses)
				assert.Equal(t, 0, aggregate.OrderCount)
				assert.True(t, aggregate.AvgHandlingTime.NoData)
				assert.True(t, aggregate.DelayPercentage.NoData)
				assert.True(t, aggregate.FulfillmentRate.NoData)
				assert.True(t, aggregate.BottleneckSeverity.NoData)
				assert.Empty(t, aggregate.BottleneckStage)
			},
		},
		{
			name: "Nenhum pedido com entrega real - só o percentual de atraso fica sem dados",
			records: []domain.OrderRecord{
				makeRecord("ORD-0001", "W1", domain.TeamBrand, baseDate,
					map[string]float64{domain.StagePicking: 8}, false, 0),
				makeRecord("ORD-0002", "W1", domain.TeamBrand, baseDate,
					map[string]float64{domain.StagePicking: 4}, false, 0),
			},
			validate: func(t *testing.T, aggregate *domain.WarehouseMetrics, warehouses []*domain.WarehouseMetrics) {
				require.Len(t, warehouses, 1)

				assert.Equal(t, 6.0, warehouses[0].AvgHandlingTime.Value)
				assert.True(t, warehouses[0].DelayPercentage.NoData)
				assert.Equal(t, 0.0, warehouses[0].FulfillmentRate.Value)
				assert.False(t, warehouses[0].FulfillmentRate.NoData)
			},
		},
		{
			name: "Empate entre etapas - vence a etapa mais cedo no fluxo",
			records: []domain.OrderRecord{
				makeRecord("ORD-0001", "W1", domain.TeamBrand, baseDate,
					map[string]float64{domain.StagePicking: 6, domain.StagePacking: 6}, true, 0),
			},
			validate: func(t *testing.T, aggregate *domain.WarehouseMetrics, warehouses []*domain.WarehouseMetrics) {
				require.Len(t, warehouses, 1)

				assert.Equal(t, domain.StagePicking, warehouses[0].BottleneckStage)
				assert.Equal(t, 0.5, warehouses[0].BottleneckSeverity.Value)
			},
		},
		{
			name: "Severidade do gargalo usa intermediários sem arredondamento",
			records: []domain.OrderRecord{
				makeRecord("ORD-0001", "W1", domain.TeamBrand, baseDate,
					map[string]float64{domain.StageReceiving: 1, domain.StagePicking: 2, domain.StagePacking: 1, domain.StageShipping: 8}, true, 0),
			},
			validate: func(t *testing.T, aggregate *domain.WarehouseMetrics, warehouses []*domain.WarehouseMetrics) {
				require.Len(t, warehouses, 1)

				// 8h de envio sobre 12h totais = 0.666..., exibido como 0.67
				assert.Equal(t, domain.StageShipping, warehouses[0].BottleneckStage)
				assert.Equal(t, 0.67, warehouses[0].BottleneckSeverity.Value)
			},
		},
		{
			name: "Etapas desiguais entre pedidos - severidade permanece entre 0 e 1",
			records: []domain.OrderRecord{
				// só etapa de envio
				makeRecord("ORD-0001", "W1", domain.TeamBrand, baseDate,
					map[string]float64{domain.StageShipping: 10}, true, 0),
				// só etapa de separação
				makeRecord("ORD-0002", "W1", domain.TeamBrand, baseDate,
					map[string]float64{domain.StagePicking: 2}, true, 0),
			},
			validate: func(t *testing.T, aggregate *domain.WarehouseMetrics, warehouses []*domain.WarehouseMetrics) {
				require.Len(t, warehouses, 1)

				// A média da etapa conta o pedido sem a etapa como zero:
				// envio 10h/2 pedidos = 5h sobre 6h de manuseio médio
				assert.Equal(t, domain.StageShipping, warehouses[0].BottleneckStage)
				assert.Equal(t, 0.83, warehouses[0].BottleneckSeverity.Value)

				assert.GreaterOrEqual(t, warehouses[0].BottleneckSeverity.Value, 0.0)
				assert.LessOrEqual(t, warehouses[0].BottleneckSeverity.Value, 1.0)
			},
		},
		{
			name: "Vários armazéns - lista ordenada pelo ID",
			records: []domain.OrderRecord{
				makeRecord("ORD-0001", "W3", domain.TeamBrand, baseDate,
					map[string]float64{domain.StagePicking: 4}, true, 0),
				makeRecord("ORD-0002", "W1", domain.TeamPerformance, baseDate,
					map[string]float64{domain.StagePicking: 8}, true, 0),
				makeRecord("ORD-0003", "W2", domain.TeamSocialMedia, baseDate,
					map[string]float64{domain.StagePicking: 6}, true, 0),
			},
			validate: func(t *testing.T, aggregate *domain.WarehouseMetrics, warehouses []*domain.WarehouseMetrics) {
				require.Len(t, warehouses, 3)
				assert.Equal(t, "W1", warehouses[0].WarehouseID)
				assert.Equal(t, "W2", warehouses[1].WarehouseID)
				assert.Equal(t, "W3", warehouses[2].WarehouseID)
				assert.Equal(t, 3, aggregate.OrderCount)
				assert.Equal(t, 6.0, aggregate.AvgHandlingTime.Value)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aggregate, warehouses := service.ComputeMetrics(tt.records)
			tt.validate(t, aggregate, warehouses)
		})
	}
}

func TestService_FilterRecords(t *testing.T) {
	service := &Service{}

	table := []domain.OrderRecord{
		makeRecord("ORD-0001", "W1", domain.TeamBrand, time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC),
			map[string]float64{domain.StagePicking: 4}, true, 0),
		makeRecord("ORD-0002", "W2", domain.TeamPerformance, time.Date(2026, 7, 5, 8, 0, 0, 0, time.UTC),
			map[string]float64{domain.StagePicking: 4}, true, 0),
		makeRecord("ORD-0003", "W1", domain.TeamBrand, time.Date(2026, 7, 10, 23, 0, 0, 0, time.UTC),
			map[string]float64{domain.StagePicking: 4}, true, 0),
	}

	tests := []struct {
		name     string
		filters  *domain.ReportFilters
		expected []string
	}{
		{
			name:     "Sem filtro - tabela inteira na ordem original",
			filters:  nil,
			expected: []string{"ORD-0001", "ORD-0002", "ORD-0003"},
		},
		{
			name: "Intervalo completo com todos os times - tabela inalterada",
			filters: &domain.ReportFilters{
				StartDate: datePtr(2026, 7, 1),
				EndDate:   datePtr(2026, 7, 10),
				Team:      domain.TeamAll,
			},
			expected: []string{"ORD-0001", "ORD-0002", "ORD-0003"},
		},
		{
			name: "Pontas do intervalo são inclusivas, comparadas por dia",
			filters: &domain.ReportFilters{
				StartDate: datePtr(2026, 7, 5),
				EndDate:   datePtr(2026, 7, 10),
			},
			expected: []string{"ORD-0002", "ORD-0003"},
		},
		{
			name: "Filtro por time aceita o nome completo",
			filters: &domain.ReportFilters{
				Team: "Brand Team",
			},
			expected: []string{"ORD-0001", "ORD-0003"},
		},
		{
			name: "Filtro por time aceita a tag curta",
			filters: &domain.ReportFilters{
				Team: "performance",
			},
			expected: []string{"ORD-0002"},
		},
		{
			name: "Recorte sem resultados retorna lista vazia, sem erro",
			filters: &domain.ReportFilters{
				StartDate: datePtr(2026, 8, 1),
				EndDate:   datePtr(2026, 8, 31),
			},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := service.FilterRecords(table, tt.filters)

			ids := make([]string, 0, len(filtered))
			for _, record := range filtered {
				ids = append(ids, record.OrderID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

type stubRecommender struct {
	messages []string
}

func (s *stubRecommender) Select(_ *domain.Preset, _ *domain.WarehouseMetrics) []string {
	return s.messages
}

func TestService_BuildDashboard(t *testing.T) {
	recommender := &stubRecommender{messages: []string{domain.DefaultRecommendation}}
	service := NewService(recommender)

	presets := domain.NewPresetTable()
	baseDate := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	records := []domain.OrderRecord{
		makeRecord("ORD-0001", "W1", domain.TeamBrand, baseDate,
			map[string]float64{domain.StagePicking: 4}, true, 0),
		makeRecord("ORD-0002", "W2", domain.TeamPerformance, baseDate,
			map[string]float64{domain.StagePicking: 8}, true, 0),
	}

	t.Run("Preset de time restringe o recorte ao time do preset", func(t *testing.T) {
		response := service.BuildDashboard(records, presets[domain.PresetBrand], nil)

		require.NotNil(t, response)
		assert.Equal(t, domain.PresetBrand, response.Preset)
		require.Len(t, response.Warehouses, 1)
		assert.Equal(t, "W1", response.Warehouses[0].WarehouseID)
		assert.Equal(t, []string{domain.DefaultRecommendation}, response.Recommendations)
	})

	t.Run("Preset All Teams inclui todos os armazéns", func(t *testing.T) {
		response := service.BuildDashboard(records, presets[domain.PresetAllTeams], nil)

		require.Len(t, response.Warehouses, 2)
		assert.Equal(t, 2, response.Aggregate.OrderCount)
	})

	t.Run("Tabela vazia produz resposta completa sem dados, sem pânico", func(t *testing.T) {
		response := service.BuildDashboard(nil, presets[domain.PresetAllTeams], nil)

		require.NotNil(t, response)
		assert.Empty(t, response.Warehouses)
		assert.True(t, response.Aggregate.AvgHandlingTime.NoData)
		assert.Equal(t, []string{domain.DefaultRecommendation}, response.Recommendations)
	})
}

func TestService_SlowestWarehouses(t *testing.T) {
	service := &Service{}
	baseDate := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	records := make([]domain.OrderRecord, 0, 3)
	for i, hours := range []float64{4, 12, 8} {
		records = append(records, makeRecord(
			fmt.Sprintf("ORD-%04d", i+1),
			fmt.Sprintf("W%d", i+1),
			domain.TeamBrand,
			baseDate,
			map[string]float64{domain.StagePicking: hours},
			true, 0,
		))
	}

	slowest := service.SlowestWarehouses(records, nil, 2)

	require.Len(t, slowest, 2)
	assert.Equal(t, "W2", slowest[0].WarehouseID)
	assert.Equal(t, 12.0, slowest[0].AvgHandlingTime.Value)
	assert.Equal(t, "W3", slowest[1].WarehouseID)
}
