package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/motor-quotation/internal/wizard"
)

func TestSubmissionLog(t *testing.T) {
	current := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)
	l := newSubmissionLog(time.Hour)
	l.now = func() time.Time { return current }

	confirmed, pending := l.lookup("s1")
	assert.Nil(t, confirmed)
	assert.False(t, pending)

	require.True(t, l.reserve("s1"))
	assert.False(t, l.reserve("s1"))
	_, pending = l.lookup("s1")
	assert.True(t, pending)

	l.confirm("s1", wizard.Snapshot{Step: wizard.StepConfirmation})
	confirmed, pending = l.lookup("s1")
	assert.False(t, pending)
	require.NotNil(t, confirmed)
	assert.Equal(t, wizard.StepConfirmation, confirmed.Step)
	assert.False(t, l.reserve("s1"))

	t.Run("release allows a retry", func(t *testing.T) {
		require.True(t, l.reserve("s2"))
		l.release("s2")
		assert.True(t, l.reserve("s2"))
	})

	t.Run("entries expire with the session", func(t *testing.T) {
		current = current.Add(time.Hour)
		confirmed, pending := l.lookup("s1")
		assert.Nil(t, confirmed)
		assert.False(t, pending)

		assert.True(t, l.reserve("s3"))
		assert.NotContains(t, l.entries, "s1")
		assert.NotContains(t, l.entries, "s2")
	})
}
