package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/ports"
)

// Inbox implements ports.Notifier and ports.NotificationInbox by keeping
// messages per user.
type Inbox struct {
	mu     sync.Mutex
	nextID int64
	items  []ports.Notification
	now    func() time.Time
}

func NewInbox() *Inbox {
	return &Inbox{now: time.Now}
}

func (i *Inbox) Notify(_ context.Context, userID kernel.CustomerID, message string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.nextID++
	i.items = append(i.items, ports.Notification{
		ID:        i.nextID,
		UserID:    userID,
		Message:   message,
		CreatedAt: i.now().UTC(),
	})
}

// ListForUser returns the user's notifications, newest first.
func (i *Inbox) ListForUser(_ context.Context, userID kernel.CustomerID) ([]ports.Notification, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	result := make([]ports.Notification, 0)
	for idx := len(i.items) - 1; idx >= 0; idx-- {
		if i.items[idx].UserID == userID {
			result = append(result, i.items[idx])
		}
	}
	return result, nil
}

// Messages returns the texts sent to the user in delivery order.
func (i *Inbox) Messages(userID kernel.CustomerID) []string {
	i.mu.Lock()
	defer i.mu.Unlock()

	messages := make([]string, 0)
	for _, n := range i.items {
		if n.UserID == userID {
			messages = append(messages, n.Message)
		}
	}
	return messages
}

// MarkRead flags every notification of the user as read.
func (i *Inbox) MarkRead(_ context.Context, userID kernel.CustomerID) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	for idx := range i.items {
		if i.items[idx].UserID == userID {
			i.items[idx].Read = true
		}
	}
	return nil
}

func (i *Inbox) DeleteForUser(_ context.Context, userID kernel.CustomerID) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.items = slices.DeleteFunc(i.items, func(n ports.Notification) bool { return n.UserID == userID })
	return nil
}
