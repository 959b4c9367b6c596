package notification

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abagtas/listahan/pkg/money"
)

// Repository handles notification data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new notification repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new notification into the database
func (r *Repository) Create(ctx context.Context, customerID int64, kind, message string, amount money.Centavos, category string) (*Notification, error) {
	query := `
		INSERT INTO notifications (customer_id, kind, message, amount_centavos, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, customer_id, kind, message, amount_centavos, category, is_read, created_at
	`

	notification := &Notification{}
	err := r.db.QueryRowContext(ctx, query, customerID, kind, message, int64(amount), category).Scan(
		&notification.ID,
		&notification.CustomerID,
		&notification.Kind,
		&notification.Message,
		&notification.AmountCentavos,
		&notification.Category,
		&notification.IsRead,
		&notification.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return notification, nil
}

// GetByID retrieves a notification by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Notification, error) {
	query := `
		SELECT id, customer_id, kind, message, amount_centavos, category, is_read, created_at
		FROM notifications
		WHERE id = $1
	`

	notification := &Notification{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&notification.ID,
		&notification.CustomerID,
		&notification.Kind,
		&notification.Message,
		&notification.AmountCentavos,
		&notification.Category,
		&notification.IsRead,
		&notification.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return notification, nil
}

// List retrieves notifications, newest first, optionally only unread
func (r *Repository) List(ctx context.Context, limit, offset int, unreadOnly bool) ([]*Notification, int, error) {
	countQuery := `SELECT COUNT(*) FROM notifications`
	if unreadOnly {
		countQuery += ` WHERE is_read = false`
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT id, customer_id, kind, message, amount_centavos, category, is_read, created_at
		FROM notifications
	`
	if unreadOnly {
		query += ` WHERE is_read = false`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		notification := &Notification{}
		if err := rows.Scan(
			&notification.ID,
			&notification.CustomerID,
			&notification.Kind,
			&notification.Message,
			&notification.AmountCentavos,
			&notification.Category,
			&notification.IsRead,
			&notification.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, notification)
	}

	return notifications, total, nil
}

// MarkAsRead marks a notification as read
func (r *Repository) MarkAsRead(ctx context.Context, id int64) error {
	query := `UPDATE notifications SET is_read = true WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

// MarkAllAsRead marks every unread notification as read
func (r *Repository) MarkAllAsRead(ctx context.Context) error {
	query := `UPDATE notifications SET is_read = true WHERE is_read = false`
	_, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}
	return nil
}

// GetUnreadCount returns the count of unread notifications
func (r *Repository) GetUnreadCount(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE is_read = false`
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
