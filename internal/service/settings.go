package service

import (
	"errors"
	"strconv"

	"cuadrante-bot/internal/models"
	"cuadrante-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

// SettingsService resolves the planned-time fallback configuration used
// when a day inside a period has no official schedule row.
type SettingsService struct {
	settingRepo repository.SettingRepository
	logger      *logrus.Logger
}

func NewSettingsService(settingRepo repository.SettingRepository) *SettingsService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &SettingsService{
		settingRepo: settingRepo,
		logger:      logger,
	}
}

// FallbackConfig returns the stored fallback mode and per-day minutes.
// Missing or malformed settings resolve to the defaults ("zero", 480).
func (s *SettingsService) FallbackConfig() (string, int, error) {
	mode, err := s.settingRepo.Get(models.SettingFallbackMode)
	if err != nil {
		return "", 0, err
	}
	if mode != models.FallbackModeZero && mode != models.FallbackModeContract {
		mode = models.FallbackModeZero
	}

	raw, err := s.settingRepo.Get(models.SettingFallbackMinutes)
	if err != nil {
		return "", 0, err
	}

	minutes := models.DefaultFallbackMinutes
	if raw != "" {
		parsed, convErr := strconv.Atoi(raw)
		if convErr != nil || parsed < 0 {
			s.logger.WithField("value", raw).Warn("Ignoring malformed fallback minutes setting")
		} else {
			minutes = parsed
		}
	}

	return mode, minutes, nil
}

// FallbackMinutes collapses the configuration into the effective per-day
// value: zero mode always contributes nothing, contract mode contributes
// the configured fixed minutes.
func (s *SettingsService) FallbackMinutes() (int, error) {
	mode, minutes, err := s.FallbackConfig()
	if err != nil {
		return 0, err
	}

	if mode == models.FallbackModeZero {
		return 0, nil
	}

	return minutes, nil
}

// SetFallbackConfig stores a new fallback configuration.
func (s *SettingsService) SetFallbackConfig(mode string, minutes int) error {
	if mode != models.FallbackModeZero && mode != models.FallbackModeContract {
		return errors.New("fallback mode must be 'zero' or 'contract'")
	}

	if minutes < 0 {
		return errors.New("fallback minutes cannot be negative")
	}

	if err := s.settingRepo.Set(models.SettingFallbackMode, mode); err != nil {
		return err
	}

	if err := s.settingRepo.Set(models.SettingFallbackMinutes, strconv.Itoa(minutes)); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"mode":    mode,
		"minutes": minutes,
	}).Info("Fallback configuration updated")

	return nil
}
