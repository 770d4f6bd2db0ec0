package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreHistory(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	for i, quizID := range []string{"q1", "q2", "q3"} {
		require.NoError(t, st.RecordAttempt(ctx, Attempt{
			SessionID: "s1",
			QuizID:    quizID,
			Options:   []string{"a", "b", "c", "d"},
			Choice:    i + 1,
			Answer:    1,
			Correct:   i == 0,
		}))
	}
	require.NoError(t, st.RecordAttempt(ctx, Attempt{SessionID: "s2", QuizID: "other"}))

	all, err := st.History(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "q3", all[0].QuizID)
	assert.Equal(t, "q1", all[2].QuizID)
	assert.True(t, all[2].Correct)
	assert.False(t, all[0].CreatedAt.IsZero())

	limited, err := st.History(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "q2", limited[1].QuizID)

	none, err := st.History(ctx, "nobody", 5)
	require.NoError(t, err)
	assert.Empty(t, none)

	assert.NoError(t, st.Close())
}

func TestMemoryStoreCopiesOptions(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	opts := []string{"a", "b", "c", "d"}
	require.NoError(t, st.RecordAttempt(ctx, Attempt{SessionID: "s", Options: opts}))
	opts[0] = "changed"

	got, err := st.History(ctx, "s", 1)
	require.NoError(t, err)
	assert.Equal(t, "a", got[0].Options[0])
}
