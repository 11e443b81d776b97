package domain

import "time"

// TeamAll é o valor de filtro que não restringe por time.
const TeamAll = "all"

// ReportFilters define o recorte aplicado sobre a tabela de pedidos antes do
// cálculo das métricas: intervalo de datas (inclusivo nas duas pontas) e time.
type ReportFilters struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Team      string     `json:"team"`
}
