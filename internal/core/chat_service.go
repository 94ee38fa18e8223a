package core

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/faqdesk/chat-backend/internal/store"
)

// ChatService records client-reported chat interactions: a question/answer
// pair with a suggested category and optional feedback.
type ChatService struct {
	store ChatStore
}

func NewChatService(chatStore ChatStore) *ChatService {
	return &ChatService{store: chatStore}
}

// Classify applies the category rule: the suggested label sticks only when
// the question itself mentions it (case-insensitive substring); everything
// else falls back to "other".
func Classify(question, category string) string {
	if category != "" && strings.Contains(strings.ToLower(question), strings.ToLower(category)) {
		return category
	}
	return store.CategoryOther
}

// StoreChat saves or updates the entry for the question's normalized form.
// The category is recomputed on every call. On an existing entry only the
// category and the tally matching the submitted feedback change; the usage
// count is bumped by ProcessQuestion alone, never here. The bool reports
// whether a new entry was created.
func (s *ChatService) StoreChat(ctx context.Context, question, category, answer, feedback string) (*store.ChatEntry, bool, error) {
	if strings.TrimSpace(question) == "" {
		return nil, false, errors.Wrap(ErrValidation, "question is required")
	}
	switch feedback {
	case store.FeedbackThumbsUp, store.FeedbackThumbsDown:
	default:
		// Unknown labels are stored as neutral and bump no tally.
		feedback = store.FeedbackNeutral
	}

	normalized := Normalize(question)

	entry, created, err := s.store.UpsertChat(question, normalized, answer, Classify(question, category), feedback)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to save chat history")
	}
	return entry, created, nil
}
