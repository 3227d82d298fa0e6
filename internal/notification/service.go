package notification

import (
	"context"
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("not the recipient of this notification")
)

// Service handles notification business logic
type Service struct {
	repo *Repository
}

// NewService creates a new notification service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new notification
func (s *Service) Create(ctx context.Context, recipientID int64, message string, entityType *string, entityID *int64) (*Notification, error) {
	return s.repo.Create(ctx, recipientID, message, entityType, entityID)
}

// Notify creates a notification tied to a related entity. It is the
// hook the expense service uses to tell each debtor what they owe.
func (s *Service) Notify(ctx context.Context, recipientID int64, message, entityType string, entityID int64) error {
	_, err := s.repo.Create(ctx, recipientID, message, &entityType, &entityID)
	return err
}

// GetByID retrieves a notification by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Notification, error) {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}
	return notification, nil
}

// ListByRecipientID retrieves all notifications for a person
func (s *Service) ListByRecipientID(ctx context.Context, recipientID int64, page, perPage int, unreadOnly bool) ([]*Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByRecipientID(ctx, recipientID, perPage, offset, unreadOnly)
}

// MarkAsRead marks a notification as read
func (s *Service) MarkAsRead(ctx context.Context, id, personID int64) error {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}
	if notification.RecipientID != personID {
		return ErrNotRecipient
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a person
func (s *Service) MarkAllAsRead(ctx context.Context, personID int64) error {
	return s.repo.MarkAllAsRead(ctx, personID)
}

// GetUnreadCount returns the count of unread notifications
func (s *Service) GetUnreadCount(ctx context.Context, personID int64) (int, error) {
	return s.repo.GetUnreadCount(ctx, personID)
}

// Helper methods for creating specific notification types

// NotifyExpenseAdded tells a debtor about a new expense they owe on
func (s *Service) NotifyExpenseAdded(ctx context.Context, recipientID int64, payerName string, amount float64, expenseID int64) (*Notification, error) {
	message := fmt.Sprintf("%s added an expense. You owe %.2f", payerName, amount)
	entityType := EntityTypeExpense
	return s.repo.Create(ctx, recipientID, message, &entityType, &expenseID)
}

// NotifySplitPaid tells the payer that a borrower claims to have paid
func (s *Service) NotifySplitPaid(ctx context.Context, recipientID int64, borrowerName string, splitID int64) (*Notification, error) {
	message := borrowerName + " says they paid you. Please confirm."
	entityType := EntityTypeSplit
	return s.repo.Create(ctx, recipientID, message, &entityType, &splitID)
}

// NotifyAddedToGroup tells a person they were added to a group
func (s *Service) NotifyAddedToGroup(ctx context.Context, recipientID int64, groupName string, groupID int64) (*Notification, error) {
	message := "You were added to group: " + groupName
	entityType := EntityTypeGroup
	return s.repo.Create(ctx, recipientID, message, &entityType, &groupID)
}
