package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/kart-io/brokergpt/internal/model"
)

type gormChatMessages struct {
	db *gorm.DB
}

// ListByClient returns a client's transcript in insertion order. A nil
// clientID selects the global (unscoped) conversation.
func (s *gormChatMessages) ListByClient(ctx context.Context, clientID *uint64) ([]*model.ChatMessage, error) {
	tx := s.db.WithContext(ctx)
	if clientID == nil {
		tx = tx.Where("client_id IS NULL")
	} else {
		tx = tx.Where("client_id = ?", *clientID)
	}

	var messages []*model.ChatMessage
	if err := tx.Order("created_at, id").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// Create appends a message to the transcript.
func (s *gormChatMessages) Create(ctx context.Context, message *model.ChatMessage) error {
	return s.db.WithContext(ctx).Create(message).Error
}
