// Package notificationrepo keeps customer notifications in the
// "notifications" table. It is the notifier used when no broker is configured.
package notificationrepo

import (
	"context"
	"log/slog"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/ports"

	"gorm.io/gorm"
)

type NotificationDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"index;not null"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
	Read      bool      `gorm:"column:is_read;not null"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

// GormNotificationRepository implements ports.Notifier and
// ports.NotificationInbox.
type GormNotificationRepository struct {
	db     *gorm.DB
	logger *slog.Logger
	now    func() time.Time
}

func NewGormNotificationRepository(db *gorm.DB, logger *slog.Logger) *GormNotificationRepository {
	return &GormNotificationRepository{
		db:     db,
		logger: logger.With("component", "notification_repository"),
		now:    time.Now,
	}
}

// Notify stores an unread message. Failures are logged and never returned.
func (r *GormNotificationRepository) Notify(ctx context.Context, userID kernel.CustomerID, message string) {
	dto := NotificationDTO{
		UserID:    int64(userID),
		Message:   message,
		CreatedAt: r.now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		r.logger.ErrorContext(ctx, "failed to store notification", "user_id", int64(userID), "error", err)
	}
}

// ListForUser returns the user's notifications, newest first.
func (r *GormNotificationRepository) ListForUser(ctx context.Context, userID kernel.CustomerID) ([]ports.Notification, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("user_id = ?", int64(userID)).
		Order("created_at DESC, id DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]ports.Notification, 0, len(dtos))
	for _, dto := range dtos {
		notifications = append(notifications, ports.Notification{
			ID:        dto.ID,
			UserID:    kernel.CustomerID(dto.UserID),
			Message:   dto.Message,
			CreatedAt: dto.CreatedAt,
			Read:      dto.Read,
		})
	}
	return notifications, nil
}

// MarkRead marks every notification of the user as read.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, userID kernel.CustomerID) error {
	return r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("user_id = ? AND NOT is_read", int64(userID)).
		Update("is_read", true).Error
}

func (r *GormNotificationRepository) DeleteForUser(ctx context.Context, userID kernel.CustomerID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", int64(userID)).Delete(&NotificationDTO{}).Error
}
