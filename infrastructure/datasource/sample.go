package datasource

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/danyyudha/warehouse-ops-api/internal/domain"
)

var sampleLocations = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
	"Philadelphia", "San Antonio", "San Diego", "Dallas",
}

var sampleTeams = []string{
	domain.TeamBrand,
	domain.TeamPerformance,
	domain.TeamSocialMedia,
}

// Atrasos possíveis na entrega, em horas. A maioria dos pedidos chega no
// prazo; o restante atrasa meio dia, um dia ou dois dias.
var sampleDelays = []float64{0, 0, 0, 0, 12, 24, 48}

// SampleSource gera uma tabela de demonstração determinística: mesma seed,
// mesma tabela. Cobre os últimos 60 dias.
type SampleSource struct {
	warehouses int
	orders     int
	seed       int64
}

func NewSampleSource(warehouses, orders int, seed int64) *SampleSource {
	if warehouses <= 0 {
		warehouses = 5
	}
	if orders <= 0 {
		orders = 200
	}

	return &SampleSource{
		warehouses: warehouses,
		orders:     orders,
		seed:       seed,
	}
}

func (s *SampleSource) Name() string {
	return SourceSample
}

func (s *SampleSource) Load(_ context.Context) ([]domain.OrderRecord, error) {
	rng := rand.New(rand.NewSource(s.seed))

	type warehouse struct {
		id   string
		name string
		team string
	}

	warehouses := make([]warehouse, 0, s.warehouses)
	for i := 1; i <= s.warehouses; i++ {
		warehouses = append(warehouses, warehouse{
			id:   fmt.Sprintf("W%d", i),
			name: fmt.Sprintf("Warehouse #%d (%s)", i, sampleLocations[rng.Intn(len(sampleLocations))]),
			team: sampleTeams[rng.Intn(len(sampleTeams))],
		})
	}

	now := time.Now()
	startDate := now.AddDate(0, 0, -60)

	records := make([]domain.OrderRecord, 0, s.orders)
	for i := 1; i <= s.orders; i++ {
		w := warehouses[rng.Intn(len(warehouses))]

		orderDate := startDate.AddDate(0, 0, rng.Intn(61))

		// Duração de cada etapa, em horas: o manuseio total fica na faixa de
		// 2 a 48 horas e o envio domina o prazo, como nos dados de produção
		stages := map[string]float64{
			domain.StageReceiving: 0.5 + rng.Float64()*5.5,
			domain.StagePicking:   0.5 + rng.Float64()*11.5,
			domain.StagePacking:   0.5 + rng.Float64()*5.5,
			domain.StageShipping:  24 + rng.Float64()*96,
		}

		handling := 0.0
		for _, hours := range stages {
			handling += hours
		}

		expected := orderDate.Add(time.Duration(handling * float64(time.Hour)))

		record := domain.OrderRecord{
			OrderID:          fmt.Sprintf("ORD-%04d", i),
			WarehouseID:      w.id,
			WarehouseName:    w.name,
			Team:             w.team,
			OrderDate:        orderDate,
			ExpectedDelivery: expected,
			StageDurations:   stages,
		}

		// Pedidos com mais de uma semana quase sempre já foram entregues;
		// os mais recentes podem ainda estar em processamento
		delivered := false
		if now.Sub(orderDate) > 7*24*time.Hour {
			delivered = rng.Float64() < 0.95
		} else {
			delivered = rng.Float64() < 0.5
		}

		if delivered {
			delay := sampleDelays[rng.Intn(len(sampleDelays))]
			actual := expected.Add(time.Duration(delay * float64(time.Hour)))
			record.ActualDelivery = &actual
			record.Fulfilled = true
		}

		records = append(records, record)
	}

	valid, _ := Normalize(records)
	return valid, nil
}
