package logging

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New("debug", "json")
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
	_, isJSON := logger.Formatter.(*log.JSONFormatter)
	assert.True(t, isJSON)

	logger = New("not-a-level", "text")
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	_, isText := logger.Formatter.(*log.TextFormatter)
	assert.True(t, isText)
}

func TestComponent(t *testing.T) {
	entry := Component(nil, "quotation")
	assert.Equal(t, "quotation", entry.Data["component"])
}

func TestFingerprint(t *testing.T) {
	t.Run("stable and normalised", func(t *testing.T) {
		a := Fingerprint("Ali@Example.com")
		b := Fingerprint("  ali@example.com ")
		assert.Equal(t, a, b)
		assert.Len(t, a, 12)
	})

	t.Run("does not contain the input", func(t *testing.T) {
		fp := Fingerprint("03001234567")
		assert.NotContains(t, fp, "03001234567")
		assert.NotEqual(t, fp, Fingerprint("03007654321"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Fingerprint(""))
		assert.Empty(t, Fingerprint("   "))
	})
}
