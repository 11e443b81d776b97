package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/danyyudha/warehouse-ops-api/infrastructure/database/postgres"
	"github.com/danyyudha/warehouse-ops-api/internal/domain"
	"github.com/lib/pq"
)

const (
	ordersTable     = "orders o"
	warehousesTable = "warehouses w"
)

type OrderRepository interface {
	ListByDateRange(startDate, endDate time.Time) ([]domain.OrderRecord, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

// ListByDateRange busca os pedidos com data dentro do intervalo (inclusivo),
// já com os dados do armazém, ordenados pela data do pedido
func (r *orderRepository) ListByDateRange(startDate, endDate time.Time) ([]domain.OrderRecord, error) {
	query, args, err := squirrel.
		Select(
			"o.order_id",
			"w.warehouse_id",
			"w.warehouse_name",
			"w.team_assignment",
			"o.order_date",
			"o.expected_delivery_date",
			"o.actual_delivery_date",
			"o.receiving_hours",
			"o.picking_hours",
			"o.packing_hours",
			"o.shipping_hours",
			"o.is_fulfilled",
		).
		From(ordersTable).
		Join("warehouses w ON w.warehouse_id = o.warehouse_id").
		Where(squirrel.GtOrEq{"o.order_date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"o.order_date": endDate.Format(time.DateOnly)}).
		OrderBy("o.order_date ASC, o.order_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]domain.OrderRecord, 0)
	for rows.Next() {
		record, err := r.scanOrderRow(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
		}
		records = append(records, *record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *orderRepository) scanOrderRow(rows *sql.Rows) (*domain.OrderRecord, error) {
	record := &domain.OrderRecord{}

	var (
		actualDelivery sql.NullTime
		receivingHours sql.NullFloat64
		pickingHours   sql.NullFloat64
		packingHours   sql.NullFloat64
		shippingHours  sql.NullFloat64
	)

	err := rows.Scan(
		&record.OrderID,
		&record.WarehouseID,
		&record.WarehouseName,
		&record.Team,
		&record.OrderDate,
		&record.ExpectedDelivery,
		&actualDelivery,
		&receivingHours,
		&pickingHours,
		&packingHours,
		&shippingHours,
		&record.Fulfilled,
	)
	if err != nil {
		return nil, err
	}

	if actualDelivery.Valid {
		record.ActualDelivery = &actualDelivery.Time
	}

	record.StageDurations = make(map[string]float64, len(domain.CanonicalStages))
	setStage := func(stage string, hours sql.NullFloat64) {
		if hours.Valid {
			record.StageDurations[stage] = hours.Float64
		}
	}
	setStage(domain.StageReceiving, receivingHours)
	setStage(domain.StagePicking, pickingHours)
	setStage(domain.StagePacking, packingHours)
	setStage(domain.StageShipping, shippingHours)

	return record, nil
}
