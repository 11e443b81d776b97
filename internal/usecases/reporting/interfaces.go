package reporting

import (
	"github.com/danyyudha/warehouse-ops-api/internal/domain"
)

// Reporter define a interface do motor de métricas do dashboard
type Reporter interface {
	// FilterRecords aplica o recorte de período e time sobre a tabela,
	// preservando a ordem original das linhas
	FilterRecords(records []domain.OrderRecord, filters *domain.ReportFilters) []domain.OrderRecord

	// ComputeMetrics calcula as métricas por armazém e o agregado do recorte
	ComputeMetrics(records []domain.OrderRecord) (*domain.WarehouseMetrics, []*domain.WarehouseMetrics)

	// BuildDashboard monta a resposta completa do painel para um preset
	BuildDashboard(records []domain.OrderRecord, preset *domain.Preset, filters *domain.ReportFilters) *domain.DashboardResponse

	// SlowestWarehouses lista os armazéns mais lentos por tempo médio de manuseio
	SlowestWarehouses(records []domain.OrderRecord, filters *domain.ReportFilters, limit int) []*domain.WarehouseMetrics
}

// Recommender seleciona as recomendações aplicáveis ao agregado de um preset
type Recommender interface {
	Select(preset *domain.Preset, aggregate *domain.WarehouseMetrics) []string
}
