package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
	"github.com/mymedina/commerce/internal/domain/model"
)

type shipmentRepository struct {
	storage *Storage
}

const shipmentColumns = `id, order_id, courier, service, waybill, courier_order_id, tracking_id, tracking_url,
                         status, cost, shipped_at, delivered_at, created_at, updated_at`

func scanShipment(row pgx.Row) (*model.Shipment, error) {
	var sh model.Shipment
	err := row.Scan(&sh.ID, &sh.OrderID, &sh.Courier, &sh.Service, &sh.Waybill,
		&sh.CourierOrderID, &sh.TrackingID, &sh.TrackingURL,
		&sh.Status, &sh.Cost, &sh.ShippedAt, &sh.DeliveredAt, &sh.CreatedAt, &sh.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &sh, nil
}

// Create books the single shipment of an order and advances a PAID order to
// PROCESSING in the same transaction. The unique order_id constraint backs the
// one-shipment-per-order rule against concurrent creates.
func (r *shipmentRepository) Create(ctx context.Context, shipment *model.Shipment) (*model.Shipment, error) {
	created := *shipment
	created.ID = uuid.New()

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockOrder = `SELECT status FROM orders WHERE id=$1 FOR UPDATE`
		var orderStatus model.OrderStatus
		if err := tx.QueryRow(ctx, lockOrder, created.OrderID).Scan(&orderStatus); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if orderStatus != model.OrderStatusPaid && orderStatus != model.OrderStatusProcessing {
			return &domainErrors.InvalidStateError{
				Entity: "order",
				State:  string(orderStatus),
				Reason: "only paid orders can be shipped",
			}
		}

		const insert = `INSERT INTO shipments (id, order_id, courier, service, waybill, courier_order_id, tracking_id, tracking_url, status, cost)
                        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                        RETURNING created_at, updated_at`
		err := tx.QueryRow(ctx, insert,
			created.ID, created.OrderID, created.Courier, created.Service, created.Waybill,
			created.CourierOrderID, created.TrackingID, created.TrackingURL, created.Status, created.Cost,
		).Scan(&created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		if orderStatus == model.OrderStatusPaid {
			const advance = `UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1`
			if _, err := tx.Exec(ctx, advance, created.OrderID, model.OrderStatusProcessing); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *shipmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Shipment, error) {
	const query = `SELECT ` + shipmentColumns + ` FROM shipments WHERE id=$1`
	return scanShipment(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *shipmentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Shipment, error) {
	const query = `SELECT ` + shipmentColumns + ` FROM shipments WHERE order_id=$1`
	return scanShipment(r.storage.pool.QueryRow(ctx, query, orderID))
}

// UpdateStatus applies a courier status. SHIPPED stamps the shipped time and
// moves the order to SHIPPED; DELIVERED stamps the delivered time and completes
// the order. Other statuses are informational tracking updates.
func (r *shipmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ShipmentStatus, waybill string) (*model.Shipment, error) {
	var updated *model.Shipment
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockShipment = `SELECT ` + shipmentColumns + ` FROM shipments WHERE id=$1 FOR UPDATE`
		current, err := scanShipment(tx.QueryRow(ctx, lockShipment, id))
		if err != nil {
			return err
		}

		if waybill == "" {
			waybill = current.Waybill
		}

		switch status {
		case model.ShipmentStatusShipped:
			const ship = `UPDATE shipments SET status=$2, waybill=$3, shipped_at=NOW(), updated_at=NOW() WHERE id=$1`
			if _, err := tx.Exec(ctx, ship, id, status, waybill); err != nil {
				return err
			}
			const advance = `UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1`
			if _, err := tx.Exec(ctx, advance, current.OrderID, model.OrderStatusShipped); err != nil {
				return err
			}
		case model.ShipmentStatusDelivered:
			const deliver = `UPDATE shipments SET status=$2, waybill=$3, delivered_at=NOW(), updated_at=NOW() WHERE id=$1`
			if _, err := tx.Exec(ctx, deliver, id, status, waybill); err != nil {
				return err
			}
			const complete = `UPDATE orders SET status=$2, completed_at=NOW(), updated_at=NOW() WHERE id=$1`
			if _, err := tx.Exec(ctx, complete, current.OrderID, model.OrderStatusCompleted); err != nil {
				return err
			}
		default:
			const update = `UPDATE shipments SET status=$2, waybill=$3, updated_at=NOW() WHERE id=$1`
			if _, err := tx.Exec(ctx, update, id, status, waybill); err != nil {
				return err
			}
		}

		const reread = `SELECT ` + shipmentColumns + ` FROM shipments WHERE id=$1`
		updated, err = scanShipment(tx.QueryRow(ctx, reread, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateWaybill records a courier-issued tracking number without touching the
// shipment status, for courier webhook ingestion.
func (r *shipmentRepository) UpdateWaybill(ctx context.Context, id uuid.UUID, waybill string) (*model.Shipment, error) {
	const query = `UPDATE shipments SET waybill=$2, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, waybill)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}
