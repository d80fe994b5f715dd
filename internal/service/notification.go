package service

import (
	"context"

	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID string, page, pageSize int) ([]domain.Notification, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	notes, err := s.noteRepo.List(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []domain.Notification{}
	}
	return notes, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}
