package handler

import (
	"testing"
	"time"

	"viola/internal/domain"
	"viola/internal/service"
	"viola/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestClassifyText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		correction bool
		liveActive bool
		fromBot    bool
		expected   textClassification
	}{
		{
			name:     "plain message in an idle chat",
			text:     "hello there",
			expected: classIgnore,
		},
		{
			name:       "plain message in a live chat",
			text:       "hello there",
			liveActive: true,
			expected:   classLive,
		},
		{
			name:       "correction reply beats live translation",
			text:       "de",
			correction: true,
			liveActive: true,
			expected:   classRetry,
		},
		{
			name:       "correction reply in an idle chat",
			text:       "de",
			correction: true,
			expected:   classRetry,
		},
		{
			name:       "bot sender is skipped in a live chat",
			text:       "hello there",
			liveActive: true,
			fromBot:    true,
			expected:   classIgnore,
		},
		{
			name:       "command is never live-translated",
			text:       "/stoplive",
			liveActive: true,
			expected:   classIgnore,
		},
		{
			name:       "empty message is ignored",
			text:       "",
			liveActive: true,
			expected:   classIgnore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyText(tt.text, tt.correction, tt.liveActive, tt.fromBot)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPrepareRetry_TargetCodeRestoresContext(t *testing.T) {
	h := &Handler{
		retries: service.NewRetryStore(time.Hour, testutil.NewTestLogger()),
		logger:  testutil.NewTestLogger(),
	}
	rc := domain.RetryContext{
		Key:     testutil.NewTestKey(-100, 7),
		Request: testutil.NewTestRequest("bonjour", "", "en"),
	}

	_, ok := h.prepareRetry(rc, "en")
	assert.False(t, ok)

	// The context survived the wrong-code reply and can be corrected again.
	restored, ok := h.retries.Take(rc.Key)
	assert.True(t, ok)
	assert.Equal(t, rc.Request, restored.Request)
}

func TestPrepareRetry_CorrectedSource(t *testing.T) {
	h := &Handler{
		retries: service.NewRetryStore(time.Hour, testutil.NewTestLogger()),
		logger:  testutil.NewTestLogger(),
	}
	rc := domain.RetryContext{
		Key:     testutil.NewTestKey(-100, 7),
		Request: testutil.NewTestRequest("bonjour", "", "en"),
	}

	req, ok := h.prepareRetry(rc, "fr")
	assert.True(t, ok)
	assert.Equal(t, domain.LanguageCode("fr"), req.Source)
	assert.Equal(t, domain.LanguageCode("en"), req.Target)

	// Nothing was put back; the context stays consumed.
	assert.Equal(t, 0, h.retries.Len())
}
