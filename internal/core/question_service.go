package core

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/faqdesk/chat-backend/internal/store"
)

// QuestionService answers user questions, preferring cached answers over
// round-trips to the answering collaborator.
type QuestionService struct {
	store    ChatStore
	answerer Answerer
}

func NewQuestionService(chatStore ChatStore, answerer Answerer) *QuestionService {
	return &QuestionService{
		store:    chatStore,
		answerer: answerer,
	}
}

// ProcessQuestion resolves a question to an answer and the id of its cache
// entry. A cache hit bumps the entry's usage count and returns the stored
// answer; a miss asks the answering collaborator and caches the result with
// count 1. Nothing is written when the collaborator fails.
func (s *QuestionService) ProcessQuestion(ctx context.Context, question string) (*store.ChatEntry, error) {
	if strings.TrimSpace(question) == "" {
		return nil, errors.Wrap(ErrValidation, "question is required")
	}

	normalized := Normalize(question)

	existing, err := s.store.GetEntryByNormalizedQuestion(normalized)
	if err != nil {
		return nil, errors.Wrap(err, "cache lookup failed")
	}
	if existing != nil {
		if err := s.store.RecordHit(existing.ID); err != nil {
			return nil, err
		}
		existing.Count++
		return existing, nil
	}

	answer, err := s.answerer.Answer(ctx, question)
	if err != nil {
		return nil, err
	}

	entry, err := s.store.UpsertQuestionAnswer(question, normalized, answer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to cache answer")
	}
	return entry, nil
}
