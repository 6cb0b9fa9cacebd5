package repository

import (
	"errors"

	"cuadrante-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	// Get returns the stored value, or "" when the key has never been set.
	Get(key string) (string, error)
	Set(key, value string) error
}

type GormSettingRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormSettingRepository(db *gorm.DB) (*GormSettingRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate settings table")
		return nil, err
	}

	logger.Info("Setting repository initialized")

	return &GormSettingRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormSettingRepository) Get(key string) (string, error) {
	var setting models.Setting
	result := r.db.Where("key = ?", key).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return "", nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("key", key).Error("Failed to get setting")
		return "", result.Error
	}

	return setting.Value, nil
}

func (r *GormSettingRepository) Set(key, value string) error {
	r.logger.WithFields(logrus.Fields{
		"key":   key,
		"value": value,
	}).Info("Storing setting")

	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&models.Setting{Key: key, Value: value})

	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("key", key).Error("Failed to store setting")
		return result.Error
	}

	return nil
}
