package domain

// Chaves das métricas expostas pelo dashboard. Os presets referenciam
// métricas por estas chaves, assim como as regras de recomendação.
const (
	MetricAvgHandlingTime    = "avg_handling_time"
	MetricDelayPercentage    = "delay_percentage"
	MetricFulfillmentRate    = "fulfillment_rate"
	MetricBottleneckSeverity = "bottleneck_severity"
)

// AggregateWarehouseID identifica a entrada agregada de todos os armazéns.
const AggregateWarehouseID = "all"

// MetricValue carrega o valor de uma métrica ou o marcador de "sem dados".
// "Sem dados" é um valor legítimo, não um erro: um armazém sem registros no
// recorte continua aparecendo na resposta com NoData=true.
type MetricValue struct {
	Value  float64 `json:"value"`
	NoData bool    `json:"no_data,omitempty"`
}

// NewMetric cria um MetricValue com dado disponível.
func NewMetric(value float64) MetricValue {
	return MetricValue{Value: value}
}

// NoDataMetric cria o marcador de métrica sem dados.
func NoDataMetric() MetricValue {
	return MetricValue{NoData: true}
}

// WarehouseMetrics agrupa as métricas derivadas de um armazém dentro de um
// recorte de filtro. Instâncias são descartadas após a renderização; não há
// cache entre chamadas.
type WarehouseMetrics struct {
	WarehouseID        string      `json:"warehouse_id"`
	WarehouseName      string      `json:"warehouse_name"`
	OrderCount         int         `json:"order_count"`
	AvgHandlingTime    MetricValue `json:"avg_handling_time"`    // horas
	DelayPercentage    MetricValue `json:"delay_percentage"`     // %
	FulfillmentRate    MetricValue `json:"fulfillment_rate"`     // %
	BottleneckStage    string      `json:"bottleneck_stage,omitempty"`
	BottleneckSeverity MetricValue `json:"bottleneck_severity"` // razão em [0,1]
}

// MetricByKey retorna a métrica correspondente à chave, para avaliação
// uniforme das regras de recomendação.
func (m *WarehouseMetrics) MetricByKey(key string) (MetricValue, bool) {
	switch key {
	case MetricAvgHandlingTime:
		return m.AvgHandlingTime, true
	case MetricDelayPercentage:
		return m.DelayPercentage, true
	case MetricFulfillmentRate:
		return m.FulfillmentRate, true
	case MetricBottleneckSeverity:
		return m.BottleneckSeverity, true
	}
	return MetricValue{}, false
}

// DashboardResponse é a resposta completa de uma interação do dashboard:
// métricas agregadas e por armazém, mais as recomendações do preset ativo.
type DashboardResponse struct {
	Preset          string              `json:"preset"`
	MetricKeys      []string            `json:"metric_keys"`
	Aggregate       *WarehouseMetrics   `json:"aggregate"`
	Warehouses      []*WarehouseMetrics `json:"warehouses"`
	Recommendations []string            `json:"recommendations"`
	Filters         *ReportFilters      `json:"filters"`
}
