package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
	"github.com/mymedina/commerce/internal/domain/model"
)

type paymentRepository struct {
	storage *Storage
}

const paymentColumns = `id, order_id, transaction_id, method, status, amount, redirect_url,
                        expires_at, webhook_payload, signature_key, initiated_at, settled_at, created_at, updated_at`

func scanPayment(row pgx.Row) (*model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.TransactionID, &p.Method, &p.Status, &p.Amount,
		&p.RedirectURL, &p.ExpiresAt, &p.WebhookPayload, &p.SignatureKey,
		&p.InitiatedAt, &p.SettledAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create assigns the date-scoped transaction id from the atomic daily counter
// and persists the payment attempt in one transaction.
func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	created := *payment
	created.ID = uuid.New()

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if created.TransactionID == "" {
			day := time.Now().Format("20060102")
			seq, err := nextSequence(ctx, tx, "payment", day)
			if err != nil {
				return err
			}
			created.TransactionID = formatSequenceNumber("TRX", day, seq)
		}

		const query = `INSERT INTO payments (id, order_id, transaction_id, method, status, amount, redirect_url, expires_at, initiated_at)
                       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                       RETURNING created_at, updated_at`
		return tx.QueryRow(ctx, query,
			created.ID, created.OrderID, created.TransactionID, created.Method, created.Status,
			created.Amount, created.RedirectURL, created.ExpiresAt, created.InitiatedAt,
		).Scan(&created.CreatedAt, &created.UpdatedAt)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE id=$1`
	return scanPayment(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *paymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id=$1`
	return scanPayment(r.storage.pool.QueryRow(ctx, query, transactionID))
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE order_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.TransactionID, &p.Method, &p.Status, &p.Amount,
			&p.RedirectURL, &p.ExpiresAt, &p.WebhookPayload, &p.SignatureKey,
			&p.InitiatedAt, &p.SettledAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// NextTransactionID reserves a transaction id from the daily counter. Ids
// burned by a failed gateway call leave gaps in the sequence, which the
// TRX-YYYYMMDD-NNNNN format tolerates.
func (r *paymentRepository) NextTransactionID(ctx context.Context) (string, error) {
	var id string
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		day := time.Now().Format("20060102")
		seq, err := nextSequence(ctx, tx, "payment", day)
		if err != nil {
			return err
		}
		id = formatSequenceNumber("TRX", day, seq)
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *paymentRepository) GetPendingByOrder(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM payments WHERE order_id=$1 AND status=$2`
	return scanPayment(r.storage.pool.QueryRow(ctx, query, orderID, model.PaymentStatusPending))
}

// ApplyStatus stores the webhook-driven status together with the raw payload
// and signature. A SETTLEMENT update also settles the payment and advances the
// owning order to PAID. The order update is conditional on PENDING_PAYMENT so
// a replayed webhook cannot re-stamp the paid timestamp.
func (r *paymentRepository) ApplyStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus, webhookPayload, signatureKey string) (*model.Payment, error) {
	var updated *model.Payment
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockPayment = `SELECT ` + paymentColumns + ` FROM payments WHERE id=$1 FOR UPDATE`
		current, err := scanPayment(tx.QueryRow(ctx, lockPayment, id))
		if err != nil {
			return err
		}

		if webhookPayload == "" {
			webhookPayload = current.WebhookPayload
		}
		if signatureKey == "" {
			signatureKey = current.SignatureKey
		}

		if status == model.PaymentStatusSettlement {
			const settle = `UPDATE payments
                            SET status=$2, webhook_payload=$3, signature_key=$4, settled_at=NOW(), updated_at=NOW()
                            WHERE id=$1`
			if _, err := tx.Exec(ctx, settle, id, status, webhookPayload, signatureKey); err != nil {
				return err
			}
			const payOrder = `UPDATE orders SET status=$2, paid_at=NOW(), updated_at=NOW()
                              WHERE id=$1 AND status=$3`
			if _, err := tx.Exec(ctx, payOrder, current.OrderID,
				model.OrderStatusPaid, model.OrderStatusPendingPayment); err != nil {
				return err
			}
		} else {
			// EXPIRE, CANCEL and DENY leave the order in PENDING_PAYMENT so the
			// customer can start a fresh payment attempt.
			const update = `UPDATE payments
                            SET status=$2, webhook_payload=$3, signature_key=$4, updated_at=NOW()
                            WHERE id=$1`
			if _, err := tx.Exec(ctx, update, id, status, webhookPayload, signatureKey); err != nil {
				return err
			}
		}

		const reread = `SELECT ` + paymentColumns + ` FROM payments WHERE id=$1`
		updated, err = scanPayment(tx.QueryRow(ctx, reread, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
