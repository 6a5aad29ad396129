package service

import (
	"context"
	"sort"

	"portfolio_cms/internal/logger"
	"portfolio_cms/internal/models"
	"portfolio_cms/internal/repository"
)

// MessageService is the contact-form inbox: anyone may write, the admin reads.
type MessageService struct {
	*ContentService[models.Message, *models.Message]
}

func NewMessageService(docs repository.DocumentRepo, events repository.EventRepo, log *logger.Logger) *MessageService {
	return &MessageService{
		ContentService: NewContentService[models.Message](models.CollectionMessages, docs, events, log),
	}
}

// List returns the inbox newest first.
func (s *MessageService) List(ctx context.Context) ([]*models.Message, error) {
	msgs, err := s.ContentService.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
	return msgs, nil
}
