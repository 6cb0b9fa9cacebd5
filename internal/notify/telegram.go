package notify

import (
	"fmt"

	"cuadrante-bot/internal/models"
	"cuadrante-bot/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// TelegramNotifier pushes critical balance alerts to the base admin chat.
type TelegramNotifier struct {
	client      *telegram.Client
	adminChatID int64
	logger      *logrus.Logger
}

func NewTelegramNotifier(client *telegram.Client, adminChatID int64) *TelegramNotifier {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &TelegramNotifier{
		client:      client,
		adminChatID: adminChatID,
		logger:      logger,
	}
}

func (n *TelegramNotifier) NotifyAlert(user *models.User, alert *models.Alert) {
	if n.client == nil || n.adminChatID == 0 {
		return
	}

	who := fmt.Sprintf("user #%d", alert.UserID)
	if user != nil {
		who = user.DisplayName()
	}

	text := fmt.Sprintf("🚨 Critical balance deviation\n👤 %s\n📅 %s\n💬 %s",
		who, alert.PeriodKey, alert.Message)

	msg := tgbotapi.NewMessage(n.adminChatID, text)
	if _, err := n.client.Bot.Send(msg); err != nil {
		n.logger.WithError(err).Error("Failed to send alert notification")
		return
	}

	n.logger.WithFields(logrus.Fields{
		"user_id": alert.UserID,
		"period":  alert.PeriodKey,
	}).Info("Alert notification sent")
}
