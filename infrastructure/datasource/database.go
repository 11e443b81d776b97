package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/danyyudha/warehouse-ops-api/infrastructure/repository"
	"github.com/danyyudha/warehouse-ops-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// DatabaseSource carrega a tabela de pedidos a partir do PostgreSQL,
// limitada à janela de dias configurada.
type DatabaseSource struct {
	orderRepo    repository.OrderRepository
	lookbackDays int
}

func NewDatabaseSource(orderRepo repository.OrderRepository, lookbackDays int) *DatabaseSource {
	return &DatabaseSource{
		orderRepo:    orderRepo,
		lookbackDays: lookbackDays,
	}
}

func (s *DatabaseSource) Name() string {
	return SourceDatabase
}

func (s *DatabaseSource) Load(_ context.Context) ([]domain.OrderRecord, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -s.lookbackDays)

	records, err := s.orderRepo.ListByDateRange(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	valid, quarantined := Normalize(records)
	if len(quarantined) > 0 {
		logrus.WithFields(logrus.Fields{
			"quarantined": len(quarantined),
			"valid":       len(valid),
		}).Warn("Registros do banco de dados descartados na normalização")
	}

	return valid, nil
}
