package recommending

import (
	"testing"

	"github.com/danyyudha/warehouse-ops-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestService_Select(t *testing.T) {
	service := NewService()
	presets := domain.NewPresetTable()

	tests := []struct {
		name      string
		preset    *domain.Preset
		aggregate *domain.WarehouseMetrics
		expected  []string
	}{
		{
			name:   "Operação normal - nenhuma regra dispara, retorna o default",
			preset: presets[domain.PresetAllTeams],
			aggregate: &domain.WarehouseMetrics{
				AvgHandlingTime: domain.NewMetric(10),
				DelayPercentage: domain.NewMetric(5),
				FulfillmentRate: domain.NewMetric(98),
			},
			expected: []string{domain.DefaultRecommendation},
		},
		{
			name:   "Limiar no valor exato não dispara - a comparação é estrita",
			preset: presets[domain.PresetAllTeams],
			aggregate: &domain.WarehouseMetrics{
				AvgHandlingTime: domain.NewMetric(24),
				DelayPercentage: domain.NewMetric(15),
				FulfillmentRate: domain.NewMetric(90),
			},
			expected: []string{domain.DefaultRecommendation},
		},
		{
			name:   "Várias regras disparam - mensagens em ordem de prioridade",
			preset: presets[domain.PresetAllTeams],
			aggregate: &domain.WarehouseMetrics{
				AvgHandlingTime: domain.NewMetric(30),
				DelayPercentage: domain.NewMetric(20),
				FulfillmentRate: domain.NewMetric(85),
			},
			expected: []string{
				"Handling times are above target. Review warehouse processing workflows.",
				"Delay rates are concerning. Investigate shipping partners and internal processes.",
				"Fulfillment rates are below target. Address inventory management.",
			},
		},
		{
			name:   "Métrica sem dados não dispara regra alguma",
			preset: presets[domain.PresetAllTeams],
			aggregate: &domain.WarehouseMetrics{
				AvgHandlingTime: domain.NoDataMetric(),
				DelayPercentage: domain.NoDataMetric(),
				FulfillmentRate: domain.NewMetric(85),
			},
			expected: []string{
				"Fulfillment rates are below target. Address inventory management.",
			},
		},
		{
			name:   "Regra específica do preset dispara junto com as comuns",
			preset: presets[domain.PresetBrand],
			aggregate: &domain.WarehouseMetrics{
				AvgHandlingTime: domain.NewMetric(10),
				DelayPercentage: domain.NewMetric(12),
				FulfillmentRate: domain.NewMetric(95),
			},
			expected: []string{
				"Consider dedicated handling for high-value items to maintain brand reputation.",
			},
		},
		{
			name:      "Agregado nulo retorna o default, sem pânico",
			preset:    presets[domain.PresetAllTeams],
			aggregate: nil,
			expected:  []string{domain.DefaultRecommendation},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := service.Select(tt.preset, tt.aggregate)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestService_SelectIsDeterministic(t *testing.T) {
	service := NewService()
	preset := domain.NewPresetTable()[domain.PresetPerformance]

	aggregate := &domain.WarehouseMetrics{
		AvgHandlingTime:    domain.NewMetric(30),
		DelayPercentage:    domain.NewMetric(20),
		FulfillmentRate:    domain.NewMetric(85),
		BottleneckSeverity: domain.NewMetric(0.7),
	}

	first := service.Select(preset, aggregate)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, service.Select(preset, aggregate))
	}
}
