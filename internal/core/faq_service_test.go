package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faqdesk/chat-backend/internal/store"
)

// seedEntry creates an entry with the wanted category, usage count and
// thumbs-up tally by replaying the operations that produce them.
func seedEntry(t *testing.T, dbStore *store.SQLiteStore, question, category string, count, thumbsUp int) *store.ChatEntry {
	t.Helper()
	entry, _, err := dbStore.UpsertChat(question, Normalize(question), "answer to "+question, Classify(question, category), store.FeedbackNeutral)
	require.NoError(t, err)
	for i := 1; i < count; i++ {
		require.NoError(t, dbStore.RecordHit(entry.ID))
	}
	for i := 0; i < thumbsUp; i++ {
		_, err := dbStore.ApplyFeedback(entry.ID, store.FeedbackThumbsUp)
		require.NoError(t, err)
	}
	entry, err = dbStore.GetEntryByID(entry.ID)
	require.NoError(t, err)
	return entry
}

func TestTopEntriesFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	dbStore := newTestStore(t)
	svc := NewFAQService(dbStore)

	for i := 0; i < 7; i++ {
		seedEntry(t, dbStore, fmt.Sprintf("support question number %d", i), "support", 1, i)
	}
	seedEntry(t, dbStore, "unrelated question", "", 1, 10)

	entries, err := svc.TopEntries(ctx, "support")
	require.NoError(t, err)
	require.Len(t, entries, 5)
	for i, entry := range entries {
		assert.Equal(t, "support", entry.Category)
		if i > 0 {
			assert.GreaterOrEqual(t, entries[i-1].ThumbsUp, entry.ThumbsUp)
		}
	}
	// Highest-voted support question first.
	assert.Equal(t, int64(6), entries[0].ThumbsUp)
}

func TestTopEntriesNoCategoryReturnsAll(t *testing.T) {
	ctx := context.Background()
	dbStore := newTestStore(t)
	svc := NewFAQService(dbStore)

	seedEntry(t, dbStore, "billing question", "billing", 1, 2)
	seedEntry(t, dbStore, "plain question", "", 1, 5)

	entries, err := svc.TopEntries(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(5), entries[0].ThumbsUp)
}

func TestTopOverallBlendsBothSides(t *testing.T) {
	ctx := context.Background()
	dbStore := newTestStore(t)
	svc := NewFAQService(dbStore)

	// Four uncategorized questions with counts 9, 7, 5, 3 and four
	// categorized ones with counts 8, 6, 4, 2.
	for i, count := range []int{9, 7, 5, 3} {
		seedEntry(t, dbStore, fmt.Sprintf("plain question %d", i), "", count, 0)
	}
	for i, count := range []int{8, 6, 4, 2} {
		seedEntry(t, dbStore, fmt.Sprintf("billing question %d", i), "billing", count, 0)
	}

	groups, err := svc.TopOverall(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 5)

	counts := make([]int64, 0, len(groups))
	for _, g := range groups {
		counts = append(counts, g.Count)
	}
	assert.Equal(t, []int64{9, 8, 7, 6, 5}, counts)
}

func TestTopOverallEmptyStore(t *testing.T) {
	svc := NewFAQService(newTestStore(t))
	groups, err := svc.TopOverall(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)
}
