package reporting

import (
	"sort"

	"github.com/danyyudha/warehouse-ops-api/internal/domain"
	"github.com/danyyudha/warehouse-ops-api/pkg/utils"
)

// AggregateWarehouseName é o rótulo da linha agregada de todos os armazéns.
const AggregateWarehouseName = "All Warehouses"

// Service implementa o motor de métricas do dashboard. O serviço é puro:
// recebe a tabela de pedidos como argumento e não guarda estado entre chamadas.
type Service struct {
	recommender Recommender
}

// NewService cria uma nova instância do motor de métricas
func NewService(recommender Recommender) Reporter {
	return &Service{
		recommender: recommender,
	}
}

// FilterRecords aplica o recorte de período e time sobre a tabela de pedidos.
// O intervalo de datas é inclusivo nas duas pontas e comparado por dia; a
// ordem original das linhas é preservada. Datas nulas não restringem nada.
func (s *Service) FilterRecords(records []domain.OrderRecord, filters *domain.ReportFilters) []domain.OrderRecord {
	if filters == nil {
		return records
	}

	var startDay, endDay *int64
	if filters.StartDate != nil {
		day := utils.TruncateToDay(*filters.StartDate).Unix()
		startDay = &day
	}
	if filters.EndDate != nil {
		day := utils.TruncateToDay(*filters.EndDate).Unix()
		endDay = &day
	}

	teamFilter := ""
	if filters.Team != "" && domain.NormalizeTeamTag(filters.Team) != domain.PresetAllTeams {
		teamFilter = domain.NormalizeTeamTag(filters.Team)
	}

	filtered := make([]domain.OrderRecord, 0, len(records))
	for _, record := range records {
		orderDay := utils.TruncateToDay(record.OrderDate).Unix()

		if startDay != nil && orderDay < *startDay {
			continue
		}
		if endDay != nil && orderDay > *endDay {
			continue
		}
		if teamFilter != "" && domain.NormalizeTeamTag(record.Team) != teamFilter {
			continue
		}

		filtered = append(filtered, record)
	}

	return filtered
}

// ComputeMetrics calcula as métricas de cada armazém presente no recorte e o
// agregado de todos eles. Armazéns são ordenados pelo ID para que a mesma
// entrada produza sempre a mesma saída.
func (s *Service) ComputeMetrics(records []domain.OrderRecord) (*domain.WarehouseMetrics, []*domain.WarehouseMetrics) {
	groups := make(map[string][]domain.OrderRecord)
	names := make(map[string]string)

	for _, record := range records {
		groups[record.WarehouseID] = append(groups[record.WarehouseID], record)
		if names[record.WarehouseID] == "" {
			names[record.WarehouseID] = record.WarehouseName
		}
	}

	warehouseIDs := make([]string, 0, len(groups))
	for id := range groups {
		warehouseIDs = append(warehouseIDs, id)
	}
	sort.Strings(warehouseIDs)

	warehouses := make([]*domain.WarehouseMetrics, 0, len(warehouseIDs))
	for _, id := range warehouseIDs {
		warehouses = append(warehouses, computeWarehouseMetrics(id, names[id], groups[id]))
	}

	aggregate := computeWarehouseMetrics(domain.AggregateWarehouseID, AggregateWarehouseName, records)

	return aggregate, warehouses
}

// BuildDashboard monta a resposta completa de uma interação do painel:
// aplica o filtro do preset, calcula as métricas e seleciona as recomendações.
func (s *Service) BuildDashboard(records []domain.OrderRecord, preset *domain.Preset, filters *domain.ReportFilters) *domain.DashboardResponse {
	if filters == nil {
		filters = &domain.ReportFilters{Team: preset.Team}
	}
	if filters.Team == "" {
		filters.Team = preset.Team
	}

	filtered := s.FilterRecords(records, filters)
	aggregate, warehouses := s.ComputeMetrics(filtered)

	recommendations := []string{domain.DefaultRecommendation}
	if s.recommender != nil {
		recommendations = s.recommender.Select(preset, aggregate)
	}

	return &domain.DashboardResponse{
		Preset:          preset.Tag,
		MetricKeys:      preset.MetricKeys,
		Aggregate:       aggregate,
		Warehouses:      warehouses,
		Recommendations: recommendations,
		Filters:         filters,
	}
}

// SlowestWarehouses lista os armazéns do recorte em ordem decrescente de
// tempo médio de manuseio. Armazéns sem dados ficam no fim da lista.
func (s *Service) SlowestWarehouses(records []domain.OrderRecord, filters *domain.ReportFilters, limit int) []*domain.WarehouseMetrics {
	filtered := s.FilterRecords(records, filters)
	_, warehouses := s.ComputeMetrics(filtered)

	sort.SliceStable(warehouses, func(i, j int) bool {
		a, b := warehouses[i], warehouses[j]
		if a.AvgHandlingTime.NoData != b.AvgHandlingTime.NoData {
			return !a.AvgHandlingTime.NoData
		}
		return a.AvgHandlingTime.Value > b.AvgHandlingTime.Value
	})

	if limit > 0 && limit < len(warehouses) {
		warehouses = warehouses[:limit]
	}

	return warehouses
}

// computeWarehouseMetrics calcula o bloco de métricas de um grupo de pedidos.
// Os intermediários são mantidos sem arredondamento; só o valor final de cada
// métrica recebe o arredondamento de exibição.
func computeWarehouseMetrics(id, name string, records []domain.OrderRecord) *domain.WarehouseMetrics {
	metrics := &domain.WarehouseMetrics{
		WarehouseID:        id,
		WarehouseName:      name,
		OrderCount:         len(records),
		AvgHandlingTime:    domain.NoDataMetric(),
		DelayPercentage:    domain.NoDataMetric(),
		FulfillmentRate:    domain.NoDataMetric(),
		BottleneckSeverity: domain.NoDataMetric(),
	}

	if len(records) == 0 {
		return metrics
	}

	totalHandling := 0.0
	fulfilled := 0
	deliveredFulfilled := 0
	delayed := 0

	stageTotals := make(map[string]float64)
	stageCounts := make(map[string]int)

	for i := range records {
		record := &records[i]

		totalHandling += record.HandlingHours()

		if record.Fulfilled {
			fulfilled++
			if record.Delivered() {
				deliveredFulfilled++
				if record.Delayed() {
					delayed++
				}
			}
		}

		for stage, hours := range record.StageDurations {
			stageTotals[stage] += hours
			stageCounts[stage]++
		}
	}

	meanHandling := totalHandling / float64(len(records))
	metrics.AvgHandlingTime = domain.NewMetric(utils.RoundWithOneDecimalPlace(meanHandling))

	// O denominador do percentual de atraso são os pedidos atendidos que já
	// possuem data de entrega real; pedidos em trânsito ficam fora das duas
	// pontas da razão
	if deliveredFulfilled > 0 {
		delayPct := float64(delayed) / float64(deliveredFulfilled) * 100
		metrics.DelayPercentage = domain.NewMetric(utils.RoundWithOneDecimalPlace(delayPct))
	}

	fulfillmentPct := float64(fulfilled) / float64(len(records)) * 100
	metrics.FulfillmentRate = domain.NewMetric(utils.RoundWithOneDecimalPlace(fulfillmentPct))

	stage, severity, ok := bottleneck(stageTotals, stageCounts, len(records), meanHandling)
	if ok {
		metrics.BottleneckStage = stage
		metrics.BottleneckSeverity = domain.NewMetric(utils.RoundWithTwoDecimalPlace(severity))
	}

	return metrics
}

// bottleneck identifica a etapa com maior duração média e a severidade do
// gargalo: a razão entre essa média e o tempo médio total de manuseio.
// A média de cada etapa é tomada sobre todos os pedidos do grupo; pedido sem
// a etapa conta como duração zero, de modo que a maior média de etapa nunca
// excede o tempo médio total e a severidade fica em [0, 1].
// Empates são resolvidos pela ordem canônica das etapas do fluxo físico.
func bottleneck(stageTotals map[string]float64, stageCounts map[string]int, recordCount int, meanHandling float64) (string, float64, bool) {
	if meanHandling <= 0 || recordCount == 0 {
		return "", 0, false
	}

	bottleneckStage := ""
	bottleneckMean := 0.0

	for _, stage := range domain.CanonicalStages {
		if stageCounts[stage] == 0 {
			continue
		}

		mean := stageTotals[stage] / float64(recordCount)
		if bottleneckStage == "" || mean > bottleneckMean {
			bottleneckStage = stage
			bottleneckMean = mean
		}
	}

	if bottleneckStage == "" {
		return "", 0, false
	}

	return bottleneckStage, bottleneckMean / meanHandling, true
}
