package domain

import "time"

// Etapas canônicas do processamento de um pedido, na ordem do fluxo físico.
// A ordem deste slice é usada como critério de desempate na análise de gargalos.
var CanonicalStages = []string{
	StageReceiving,
	StagePicking,
	StagePacking,
	StageShipping,
}

const (
	StageReceiving = "receiving"
	StagePicking   = "picking"
	StagePacking   = "packing"
	StageShipping  = "shipping"
)

// Times operacionais reconhecidos pelo dashboard
const (
	TeamBrand       = "Brand Team"
	TeamPerformance = "Performance Team"
	TeamSocialMedia = "Social Media Team"
)

// OrderRecord representa uma linha da tabela de pedidos já normalizada.
// Registros são imutáveis após a ingestão; a tabela inteira é reconstruída
// a cada recarga da fonte de dados.
type OrderRecord struct {
	OrderID          string             `json:"order_id"`
	WarehouseID      string             `json:"warehouse_id"`
	WarehouseName    string             `json:"warehouse_name"`
	Team             string             `json:"team"`
	OrderDate        time.Time          `json:"order_date"`
	ExpectedDelivery time.Time          `json:"expected_delivery_date"`
	ActualDelivery   *time.Time         `json:"actual_delivery_date,omitempty"` // nil = pedido ainda não entregue
	StageDurations   map[string]float64 `json:"stage_durations"`                // horas por etapa
	Fulfilled        bool               `json:"fulfilled"`
}

// HandlingHours retorna o tempo total de manuseio do pedido, em horas,
// somando a duração de todas as etapas de processamento.
func (r *OrderRecord) HandlingHours() float64 {
	total := 0.0
	for _, hours := range r.StageDurations {
		total += hours
	}
	return total
}

// Delivered indica se o pedido possui data de entrega real.
func (r *OrderRecord) Delivered() bool {
	return r.ActualDelivery != nil
}

// Delayed indica se o pedido foi entregue após a data prevista.
// Pedidos sem data de entrega real nunca contam como atrasados.
func (r *OrderRecord) Delayed() bool {
	return r.ActualDelivery != nil && r.ActualDelivery.After(r.ExpectedDelivery)
}

// Valid verifica a invariante básica do registro: a data de entrega real,
// quando presente, nunca antecede a data do pedido.
func (r *OrderRecord) Valid() bool {
	if r.OrderID == "" || r.WarehouseID == "" || r.OrderDate.IsZero() {
		return false
	}
	if r.ActualDelivery != nil && r.ActualDelivery.Before(r.OrderDate) {
		return false
	}
	return true
}
