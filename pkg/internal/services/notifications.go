package services

import (
	"github.com/Eliott67/TwINSA/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

const DefaultNotificationLimit = 20

// notifyAccount appends an inbox event to the receiver's record. The
// caller is responsible for saving the account afterwards.
func notifyAccount(receiver *models.Account, notification models.Notification) {
	notification.CreatedAt = nowFunc()
	receiver.Notifications = append(receiver.Notifications, notification)
	log.Debug().
		Str("receiver", receiver.Username).
		Str("kind", notification.Kind).
		Msg("Notified account.")
}

// RecentNotifications returns the last limit inbox events, most recent
// first. Storage order is untouched; trimming happens only on display.
func RecentNotifications(account models.Account, limit int) []models.Notification {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}

	total := len(account.Notifications)
	if limit > total {
		limit = total
	}

	recent := make([]models.Notification, 0, limit)
	for idx := total - 1; idx >= total-limit; idx-- {
		recent = append(recent, account.Notifications[idx])
	}
	return recent
}

// RenderNotifications resolves stored events into display strings.
func RenderNotifications(notifications []models.Notification) []string {
	messages := make([]string, 0, len(notifications))
	for _, notification := range notifications {
		messages = append(messages, notification.Render())
	}
	return messages
}
