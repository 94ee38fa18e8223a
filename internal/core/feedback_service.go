package core

import (
	"context"

	"github.com/pkg/errors"

	"github.com/faqdesk/chat-backend/internal/store"
)

// FeedbackService records thumbs-up/thumbs-down votes on cached answers.
type FeedbackService struct {
	store ChatStore
}

func NewFeedbackService(chatStore ChatStore) *FeedbackService {
	return &FeedbackService{store: chatStore}
}

// UpdateFeedback sets the entry's feedback label and bumps the matching
// tally: thumbsUp and thumbsDown each add one to their counter, any other
// value resets the label to neutral without touching the tallies. Returns
// the updated entry, or ErrNotFound when the id doesn't exist.
func (s *FeedbackService) UpdateFeedback(ctx context.Context, id, feedback string) (*store.ChatEntry, error) {
	entry, err := s.store.ApplyFeedback(id, feedback)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update feedback")
	}
	if entry == nil {
		return nil, errors.Wrapf(ErrNotFound, "chat %s", id)
	}
	return entry, nil
}
