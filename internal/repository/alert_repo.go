package repository

import (
	"cuadrante-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AlertRepository interface {
	// ReplaceForPeriod clears all alerts for the exact
	// (user, period type, period key) tuple and, when alert is non-nil,
	// inserts it - all inside a single transaction.
	ReplaceForPeriod(userID uint, periodType, periodKey string, alert *models.Alert) error
	GetByPeriod(userID uint, periodType, periodKey string) ([]*models.Alert, error)
	GetByUser(userID uint) ([]*models.Alert, error)
	DeleteByUserID(userID uint) error
}

type GormAlertRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAlertRepository(db *gorm.DB) (*GormAlertRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.Alert{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate alerts table")
		return nil, err
	}

	logger.Info("Alert repository initialized")

	return &GormAlertRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormAlertRepository) ReplaceForPeriod(userID uint, periodType, periodKey string, alert *models.Alert) error {
	r.logger.WithFields(logrus.Fields{
		"user_id":     userID,
		"period_type": periodType,
		"period_key":  periodKey,
		"has_alert":   alert != nil,
	}).Debug("Reconciling alerts for period")

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"user_id = ? AND period_type = ? AND period_key = ?",
			userID, periodType, periodKey,
		).Delete(&models.Alert{}).Error; err != nil {
			return err
		}

		if alert == nil {
			return nil
		}

		alert.ID = 0
		return tx.Create(alert).Error
	})

	if err != nil {
		r.logger.WithError(err).Error("Failed to reconcile alerts for period")
		return err
	}

	return nil
}

func (r *GormAlertRepository) GetByPeriod(userID uint, periodType, periodKey string) ([]*models.Alert, error) {
	var alerts []*models.Alert
	result := r.db.Where(
		"user_id = ? AND period_type = ? AND period_key = ?",
		userID, periodType, periodKey,
	).Order("created_at ASC").Find(&alerts)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get alerts by period")
		return nil, result.Error
	}

	return alerts, nil
}

func (r *GormAlertRepository) GetByUser(userID uint) ([]*models.Alert, error) {
	var alerts []*models.Alert
	result := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&alerts)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get alerts by user")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"count":   len(alerts),
	}).Debug("Retrieved alerts by user")

	return alerts, nil
}

func (r *GormAlertRepository) DeleteByUserID(userID uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Alert{})
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete user alerts")
		return result.Error
	}

	return nil
}
