package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mymedina/commerce/internal/domain/model"
)

// ShipmentRepository describes persistence operations for shipments.
//
// Create enforces one shipment per order and advances a PAID order to
// PROCESSING inside the same transaction. UpdateStatus cascades SHIPPED and
// DELIVERED onto the owning order within the same transaction.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *model.Shipment) (*model.Shipment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Shipment, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Shipment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ShipmentStatus, waybill string) (*model.Shipment, error)
	UpdateWaybill(ctx context.Context, id uuid.UUID, waybill string) (*model.Shipment, error)
}

// ReportRepository builds owner-facing sales aggregates.
type ReportRepository interface {
	SalesReport(ctx context.Context, from, to time.Time) (*model.SalesReport, error)
}
