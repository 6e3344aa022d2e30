package service

import (
	"context"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, error) {
	return s.noteRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, userID int32) error {
	return s.noteRepo.MarkAsRead(ctx, id, userID)
}
