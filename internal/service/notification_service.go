package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yaseenferoz/virl-backend/internal/entity"
	"github.com/yaseenferoz/virl-backend/internal/repository"
)

// NotificationService creates and serves per-user notifications. It is the
// fan-out consumer for lifecycle transitions.
type NotificationService struct {
	repo   *repository.NotificationRepository
	logger *zap.Logger
}

func NewNotificationService(repo *repository.NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// NotifyTransition translates a committed transition into notification records
// for the parties that care about it. All rows for one event are inserted in a
// single batch.
func (s *NotificationService) NotifyTransition(ctx context.Context, ev TransitionEvent) error {
	req := ev.Request
	var items []entity.Notification

	add := func(userID, message string) {
		items = append(items, entity.Notification{
			ID:              generateID(),
			UserID:          userID,
			SampleRequestID: req.ID,
			Message:         message,
			CreatedAt:       time.Now(),
		})
	}

	switch ev.To {
	case entity.StatusReceived:
		add(req.CustomerID, "Your sample has been delivered by the collector and received by the vendor")
		if req.CollectorID != nil {
			add(*req.CollectorID, fmt.Sprintf("Sample %s has been successfully delivered to the vendor", req.ID))
		}
		if req.VendorID != nil {
			add(*req.VendorID, fmt.Sprintf("Sample %s has been delivered by the collector", req.ID))
		}
	default:
		add(req.CustomerID, fmt.Sprintf("Your sample status has been updated to %s", ev.To))
		if req.CollectorID != nil {
			add(*req.CollectorID, fmt.Sprintf("Sample %s status has been updated to %s", req.ID, ev.To))
		}
	}

	if err := s.repo.CreateBatch(ctx, items); err != nil {
		return fmt.Errorf("create notifications: %w", err)
	}
	return nil
}

// ListForUser returns a user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]entity.Notification, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

// MarkRead marks one of the user's own notifications as read. Marking an
// already-read notification is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("notification %s: %w", notificationID, err)
	}
	if n.UserID != userID {
		return fmt.Errorf("%w: notification belongs to another user", ErrForbidden)
	}
	if n.Read {
		return nil
	}
	n.Read = true
	if err := s.repo.Update(ctx, n); err != nil {
		return fmt.Errorf("update notification: %w", err)
	}
	return nil
}
