package repository

import (
	"errors"

	"cuadrante-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PeriodBalanceRepository interface {
	Replace(balance *models.PeriodBalance) error
	GetByUserAndPeriod(userID uint, periodType, periodKey string) (*models.PeriodBalance, error)
	GetByUser(userID uint) ([]*models.PeriodBalance, error)
	GetByPeriod(periodType, periodKey string) ([]*models.PeriodBalance, error)
}

type GormPeriodBalanceRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormPeriodBalanceRepository(db *gorm.DB) (*GormPeriodBalanceRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.PeriodBalance{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate period_balances table")
		return nil, err
	}

	logger.Info("Period balance repository initialized")

	return &GormPeriodBalanceRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Replace atomically overwrites the balance row for the key
// (user, period type, period key). Delete and insert run in one transaction
// so a crash mid-write cannot leave a stale row behind.
func (r *GormPeriodBalanceRepository) Replace(balance *models.PeriodBalance) error {
	r.logger.WithFields(logrus.Fields{
		"user_id":     balance.UserID,
		"period_type": balance.PeriodType,
		"period_key":  balance.PeriodKey,
		"status":      balance.Status,
	}).Debug("Replacing period balance")

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"user_id = ? AND period_type = ? AND period_key = ?",
			balance.UserID, balance.PeriodType, balance.PeriodKey,
		).Delete(&models.PeriodBalance{}).Error; err != nil {
			return err
		}

		balance.ID = 0
		return tx.Create(balance).Error
	})

	if err != nil {
		r.logger.WithError(err).Error("Failed to replace period balance")
		return err
	}

	return nil
}

func (r *GormPeriodBalanceRepository) GetByUserAndPeriod(userID uint, periodType, periodKey string) (*models.PeriodBalance, error) {
	var balance models.PeriodBalance
	result := r.db.Where(
		"user_id = ? AND period_type = ? AND period_key = ?",
		userID, periodType, periodKey,
	).First(&balance)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithFields(logrus.Fields{
			"user_id":     userID,
			"period_type": periodType,
			"period_key":  periodKey,
		}).Debug("Period balance not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get period balance")
		return nil, result.Error
	}

	return &balance, nil
}

// GetByUser returns a user's balances grouped by period type, newest period
// first within each type (keys sort chronologically within a type).
func (r *GormPeriodBalanceRepository) GetByUser(userID uint) ([]*models.PeriodBalance, error) {
	var balances []*models.PeriodBalance
	result := r.db.Where("user_id = ?", userID).
		Order("period_type ASC, period_key DESC").
		Find(&balances)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get period balances by user")
		return nil, result.Error
	}

	return balances, nil
}

func (r *GormPeriodBalanceRepository) GetByPeriod(periodType, periodKey string) ([]*models.PeriodBalance, error) {
	var balances []*models.PeriodBalance
	result := r.db.Where("period_type = ? AND period_key = ?", periodType, periodKey).
		Order("user_id ASC").
		Find(&balances)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get period balances by period")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"period_type": periodType,
		"period_key":  periodKey,
		"count":       len(balances),
	}).Debug("Retrieved period balances by period")

	return balances, nil
}
