package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abagtas/listahan/internal/ledger"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// Service records ledger events as notifications and forwards them to the
// shop owner's inbox when mail is configured. It implements ledger.Notifier.
type Service struct {
	repo   *Repository
	mailer *Mailer
	log    *logrus.Logger
}

// NewService creates a new notification service
func NewService(repo *Repository, mailer *Mailer, log *logrus.Logger) *Service {
	return &Service{repo: repo, mailer: mailer, log: log}
}

// Notify persists a ledger event as a notification. Mail delivery failures
// are logged and do not fail the notification.
func (s *Service) Notify(ctx context.Context, ev ledger.Event) error {
	message := messageFor(ev)

	n, err := s.repo.Create(ctx, ev.CustomerID, string(ev.Kind), message, ev.Amount, ev.Category)
	if err != nil {
		return err
	}

	if s.mailer != nil && s.mailer.Enabled() {
		if err := s.mailer.SendEventMail(n); err != nil {
			s.log.WithError(err).Warn("event mail not delivered")
		}
	}

	return nil
}

// messageFor renders a short owner-facing summary of a ledger event.
func messageFor(ev ledger.Event) string {
	switch ev.Kind {
	case ledger.EventDebt:
		return fmt.Sprintf("Customer %d owes %s more for %s", ev.CustomerID, ev.Amount, ev.Category)
	case ledger.EventRepayment:
		return fmt.Sprintf("Customer %d paid %s toward %s", ev.CustomerID, ev.Amount, ev.Category)
	case ledger.EventDeletion:
		return fmt.Sprintf("A %s entry of %s for customer %d was removed", ev.Category, ev.Amount, ev.CustomerID)
	default:
		return fmt.Sprintf("Ledger update for customer %d: %s %s", ev.CustomerID, ev.Kind, ev.Amount)
	}
}

// List retrieves notifications, newest first
func (s *Service) List(ctx context.Context, page, perPage int, unreadOnly bool) ([]*Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset, unreadOnly)
}

// MarkAsRead marks a notification as read
func (s *Service) MarkAsRead(ctx context.Context, id int64) error {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read
func (s *Service) MarkAllAsRead(ctx context.Context) error {
	return s.repo.MarkAllAsRead(ctx)
}

// GetUnreadCount returns the count of unread notifications
func (s *Service) GetUnreadCount(ctx context.Context) (int, error) {
	return s.repo.GetUnreadCount(ctx)
}
