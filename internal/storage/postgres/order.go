package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/domain/repository"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, user_id, number, type, status, subtotal, shipping_cost, total, note,
                      recipient, recipient_phone, address_line1, address_line2, city, province, postal_code,
                      paid_at, completed_at, cancelled_at, created_at, updated_at`

func scanOrderRow(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Number, &o.Type, &o.Status,
		&o.Subtotal, &o.ShippingCost, &o.Total, &o.Note,
		&o.Address.Recipient, &o.Address.Phone, &o.Address.Line1, &o.Address.Line2,
		&o.Address.City, &o.Address.Province, &o.Address.PostalCode,
		&o.PaidAt, &o.CompletedAt, &o.CancelledAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Create persists the order, its item snapshots, and the stock decrements as
// one transaction. Stock is taken with a conditional update so two concurrent
// checkouts can never drive it below zero.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	created := *order
	created.ID = uuid.New()
	created.Items = append([]model.OrderItem(nil), order.Items...)

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		day := time.Now().Format("20060102")
		seq, err := nextSequence(ctx, tx, "order", day)
		if err != nil {
			return err
		}
		created.Number = formatSequenceNumber("ORD", day, seq)

		const insertOrder = `INSERT INTO orders (id, user_id, number, type, status, subtotal, shipping_cost, total, note,
                                                 recipient, recipient_phone, address_line1, address_line2, city, province, postal_code)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
                             RETURNING created_at, updated_at`
		err = tx.QueryRow(ctx, insertOrder,
			created.ID, created.UserID, created.Number, created.Type, created.Status,
			created.Subtotal, created.ShippingCost, created.Total, created.Note,
			created.Address.Recipient, created.Address.Phone, created.Address.Line1, created.Address.Line2,
			created.Address.City, created.Address.Province, created.Address.PostalCode,
		).Scan(&created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return err
		}

		for i := range created.Items {
			item := &created.Items[i]
			item.ID = uuid.New()
			item.OrderID = created.ID

			const takeStock = `UPDATE variants SET stock = stock - $2, updated_at = NOW()
                               WHERE id = $1 AND stock >= $2`
			tag, err := tx.Exec(ctx, takeStock, item.VariantID, item.Quantity)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				var available int
				const readStock = `SELECT stock FROM variants WHERE id=$1`
				if err := tx.QueryRow(ctx, readStock, item.VariantID).Scan(&available); err != nil {
					if errors.Is(err, pgx.ErrNoRows) {
						return domainErrors.ErrNotFound
					}
					return err
				}
				return &domainErrors.InsufficientStockError{
					ProductName: item.ProductName,
					SKU:         item.SKU,
					Requested:   item.Quantity,
					Available:   available,
				}
			}

			const insertItem = `INSERT INTO order_items (id, order_id, product_id, variant_id, product_name, sku, size, color, unit_price, quantity, subtotal)
                                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
			if _, err := tx.Exec(ctx, insertItem,
				item.ID, item.OrderID, item.ProductID, item.VariantID, item.ProductName,
				item.SKU, item.Size, item.Color, item.UnitPrice, item.Quantity, item.Subtotal); err != nil {
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

func (r *orderRepository) loadItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderItem, error) {
	if len(orderIDs) == 0 {
		return map[uuid.UUID][]model.OrderItem{}, nil
	}
	const query = `SELECT id, order_id, product_id, variant_id, product_name, sku, size, color, unit_price, quantity, subtotal
                   FROM order_items WHERE order_id = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]model.OrderItem)
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.VariantID, &it.ProductName,
			&it.SKU, &it.Size, &it.Color, &it.UnitPrice, &it.Quantity, &it.Subtotal); err != nil {
			return nil, err
		}
		items[it.OrderID] = append(items[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrderRow(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, []uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return order, nil
}

func (r *orderRepository) scanOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()
	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Number, &o.Type, &o.Status,
			&o.Subtotal, &o.ShippingCost, &o.Total, &o.Note,
			&o.Address.Recipient, &o.Address.Phone, &o.Address.Line1, &o.Address.Line2,
			&o.Address.City, &o.Address.Province, &o.Address.PostalCode,
			&o.PaidAt, &o.CompletedAt, &o.CancelledAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) attachItems(ctx context.Context, orders []model.Order) error {
	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	orders, err := r.scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int, error) {
	conditions := []string{"TRUE"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)-1, len(args))

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	orders, err := r.scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus guards terminal states and, on cancellation, restores each
// item's quantity back onto its variant inside the same transaction so the
// restore cannot be applied twice.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	var updated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockOrder = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
		current, err := scanOrderRow(tx.QueryRow(ctx, lockOrder, id))
		if err != nil {
			return err
		}
		if current.Status.Terminal() {
			return &domainErrors.InvalidStateError{
				Entity: "order",
				State:  string(current.Status),
				Reason: "status can no longer be changed",
			}
		}

		set := []string{"status=$2", "updated_at=NOW()"}
		switch status {
		case model.OrderStatusPaid:
			set = append(set, "paid_at=NOW()")
		case model.OrderStatusCompleted:
			set = append(set, "completed_at=NOW()")
		case model.OrderStatusCancelled:
			set = append(set, "cancelled_at=NOW()")
		}
		update := fmt.Sprintf(`UPDATE orders SET %s WHERE id=$1`, strings.Join(set, ", "))
		if _, err := tx.Exec(ctx, update, id, status); err != nil {
			return err
		}

		if status == model.OrderStatusCancelled {
			const restoreStock = `UPDATE variants v
                                  SET stock = v.stock + oi.quantity, updated_at = NOW()
                                  FROM order_items oi
                                  WHERE oi.order_id = $1 AND oi.variant_id = v.id`
			if _, err := tx.Exec(ctx, restoreStock, id); err != nil {
				return err
			}
		}

		const reread = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
		updated, err = scanOrderRow(tx.QueryRow(ctx, reread, id))
		return err
	})
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, []uuid.UUID{updated.ID})
	if err != nil {
		return nil, err
	}
	updated.Items = items[updated.ID]
	return updated, nil
}
