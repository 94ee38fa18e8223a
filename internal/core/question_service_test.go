package core

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faqdesk/chat-backend/internal/store"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

type fakeAnswerer struct {
	answer string
	err    error
	calls  int
}

func (f *fakeAnswerer) Answer(ctx context.Context, question string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func TestProcessQuestionRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbStore := newTestStore(t)
	answerer := &fakeAnswerer{answer: "42 is the answer."}
	svc := NewQuestionService(dbStore, answerer)

	first, err := svc.ProcessQuestion(ctx, "What is the answer?")
	require.NoError(t, err)
	assert.Equal(t, "42 is the answer.", first.Answer)
	assert.Equal(t, int64(1), first.Count)
	assert.Equal(t, 1, answerer.calls)

	// A case/whitespace/stem-equivalent re-ask hits the cache: same entry,
	// same answer, no second upstream call.
	second, err := svc.ProcessQuestion(ctx, "what IS   the answers??")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Answer, second.Answer)
	assert.Equal(t, int64(2), second.Count)
	assert.Equal(t, 1, answerer.calls)
}

func TestProcessQuestionUpstreamFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	dbStore := newTestStore(t)
	answerer := &fakeAnswerer{err: ErrUpstream}
	svc := NewQuestionService(dbStore, answerer)

	_, err := svc.ProcessQuestion(ctx, "What is churn rate?")
	require.ErrorIs(t, err, ErrUpstream)

	entry, err := dbStore.GetEntryByNormalizedQuestion(Normalize("What is churn rate?"))
	require.NoError(t, err)
	assert.Nil(t, entry, "a failed upstream call must not leave a partial entry")
}

func TestProcessQuestionValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewQuestionService(newTestStore(t), &fakeAnswerer{answer: "x"})

	for _, question := range []string{"", "   ", "\t\n"} {
		_, err := svc.ProcessQuestion(ctx, question)
		assert.ErrorIs(t, err, ErrValidation, "question %q", question)
	}
}
