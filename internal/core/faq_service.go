package core

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/faqdesk/chat-backend/internal/store"
)

// faqLimit caps every FAQ listing.
const faqLimit = 5

// FAQService ranks cached questions for the FAQ views.
type FAQService struct {
	store ChatStore
}

func NewFAQService(chatStore ChatStore) *FAQService {
	return &FAQService{store: chatStore}
}

// TopEntries returns the top entries by positive feedback, restricted to an
// exact category when one is given. Ties break on normalized question so
// the ordering is deterministic.
func (s *FAQService) TopEntries(ctx context.Context, category string) ([]store.ChatEntry, error) {
	entries, err := s.store.GetTopByCategory(category, faqLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch top entries")
	}
	return entries, nil
}

// TopOverall blends the most-asked uncategorized questions with the
// most-asked categorized ones: top groups from each side by summed usage
// count, merged and cut to the overall top.
func (s *FAQService) TopOverall(ctx context.Context) ([]store.FAQGroup, error) {
	other, err := s.store.GetFAQGroups(true, faqLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch uncategorized faq groups")
	}
	categorized, err := s.store.GetFAQGroups(false, faqLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch categorized faq groups")
	}

	combined := append(other, categorized...)
	sort.SliceStable(combined, func(i, j int) bool {
		if combined[i].Count != combined[j].Count {
			return combined[i].Count > combined[j].Count
		}
		return combined[i].NormalizedQuestion < combined[j].NormalizedQuestion
	})
	if len(combined) > faqLimit {
		combined = combined[:faqLimit]
	}
	return combined, nil
}
