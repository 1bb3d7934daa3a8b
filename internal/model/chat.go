package model

// Chat message roles.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one message in a client conversation. Messages are
// append-only: they are never mutated or deleted, and are ordered by
// creation time.
type ChatMessage struct {
	ID        uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ClientID  *uint64 `json:"clientId" gorm:"index:idx_chat_client"`
	Role      string  `json:"role" gorm:"size:16;not null"`
	Content   string  `json:"content" gorm:"type:text;not null"`
	CreatedAt int64   `json:"createdAt" gorm:"autoCreateTime:milli"`
}

// TableName returns the table name for GORM.
func (m *ChatMessage) TableName() string {
	return "chat_messages"
}
