package recommending

import (
	"github.com/danyyudha/warehouse-ops-api/internal/domain"
)

// Selector define a interface do seletor de recomendações
type Selector interface {
	// Select avalia as regras do preset contra o agregado e retorna as
	// mensagens disparadas, em ordem de prioridade
	Select(preset *domain.Preset, aggregate *domain.WarehouseMetrics) []string
}

// Service avalia as regras declarativas de recomendação dos presets.
// A avaliação é determinística: mesmas métricas, mesmas mensagens, na
// mesma ordem.
type Service struct{}

// NewService cria uma nova instância do seletor de recomendações
func NewService() Selector {
	return &Service{}
}

// Select avalia cada regra do preset de forma independente contra as métricas
// do agregado. Métricas sem dados não disparam regra alguma; quando nenhuma
// regra dispara, retorna a recomendação default de operação normal.
func (s *Service) Select(preset *domain.Preset, aggregate *domain.WarehouseMetrics) []string {
	messages := make([]string, 0, len(preset.Rules))

	if aggregate != nil {
		for _, rule := range preset.SortedRules() {
			value, ok := aggregate.MetricByKey(rule.Metric)
			if !ok || value.NoData {
				continue
			}

			if triggers(rule, value.Value) {
				messages = append(messages, rule.Message)
			}
		}
	}

	if len(messages) == 0 {
		return []string{domain.DefaultRecommendation}
	}

	return messages
}

func triggers(rule domain.RecommendationRule, value float64) bool {
	switch rule.Comparator {
	case domain.ComparatorGreaterThan:
		return value > rule.Threshold
	case domain.ComparatorLessThan:
		return value < rule.Threshold
	}
	return false
}
