package service

import (
	"errors"

	"cuadrante-bot/internal/models"
	"cuadrante-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

type UserService struct {
	userRepo repository.UserRepository
	logger   *logrus.Logger
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// RegisterFromChat creates the user on first contact and refreshes the
// stored profile data on repeat contact. It returns the stored record.
func (s *UserService) RegisterFromChat(chatID int64, username, firstName, lastName string) (*models.User, error) {
	if chatID == 0 {
		return nil, errors.New("invalid chat ID")
	}

	existing, err := s.userRepo.GetByChatID(chatID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Username = username
		existing.FirstName = firstName
		existing.LastName = lastName
		if err := s.userRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	user := &models.User{
		ChatID:    chatID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Role:      models.RoleClient,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"chat_id":  chatID,
		"username": username,
	}).Info("New user registered")

	return user, nil
}

func (s *UserService) GetByChatID(chatID int64) (*models.User, error) {
	return s.userRepo.GetByChatID(chatID)
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *UserService) GetAll() ([]*models.User, error) {
	return s.userRepo.GetAll()
}

func (s *UserService) GetAdmins() ([]*models.User, error) {
	return s.userRepo.GetAdmins()
}

func (s *UserService) IsAdmin(chatID int64) (bool, error) {
	user, err := s.userRepo.GetByChatID(chatID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return user.IsAdmin(), nil
}

func (s *UserService) SetRole(chatID int64, role models.Role) error {
	if role != models.RoleAdmin && role != models.RoleClient {
		return errors.New("unknown role")
	}
	return s.userRepo.UpdateRole(chatID, role)
}

// InitializeAdmin promotes the configured base admin chat, creating the
// record if the admin has never talked to the bot yet.
func (s *UserService) InitializeAdmin(chatID int64) error {
	if chatID == 0 {
		return nil
	}

	exists, err := s.userRepo.Exists(chatID)
	if err != nil {
		return err
	}

	if !exists {
		user := &models.User{
			ChatID: chatID,
			Role:   models.RoleAdmin,
		}
		if err := s.userRepo.Create(user); err != nil {
			return err
		}
		s.logger.WithField("chat_id", chatID).Info("Base admin created")
		return nil
	}

	return s.userRepo.UpdateRole(chatID, models.RoleAdmin)
}
