package core

import "github.com/faqdesk/chat-backend/internal/store"

// ChatStore is the persistence surface the services depend on. It is
// implemented by store.SQLiteStore; tests may substitute their own. Lookup
// methods return nil (not an error) when nothing matches.
type ChatStore interface {
	GetEntryByNormalizedQuestion(normalized string) (*store.ChatEntry, error)
	GetEntryByID(id string) (*store.ChatEntry, error)
	RecordHit(id string) error
	UpsertQuestionAnswer(question, normalized, answer string) (*store.ChatEntry, error)
	UpsertChat(question, normalized, answer, category, feedback string) (*store.ChatEntry, bool, error)
	GetTopByCategory(category string, limit int) ([]store.ChatEntry, error)
	GetFAQGroups(otherOnly bool, limit int) ([]store.FAQGroup, error)
	ApplyFeedback(id, feedback string) (*store.ChatEntry, error)
}
