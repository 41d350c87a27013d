package service

import (
	"fmt"
	"testing"

	"viola/internal/domain"
	"viola/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name           string
		req            domain.TranslationRequest
		liveTarget     domain.LanguageCode
		storedTarget   domain.LanguageCode
		storedFound    bool
		storedError    error
		consultsPrefs  bool
		expectedSource domain.LanguageCode
		expectedTarget domain.LanguageCode
		expectedError  error
	}{
		{
			name:           "both explicit never consults preferences",
			req:            testutil.NewTestRequest("hello", "en", "es"),
			consultsPrefs:  false,
			expectedSource: "en",
			expectedTarget: "es",
		},
		{
			name:           "missing source resolves to auto",
			req:            testutil.NewTestRequest("hello", "", "es"),
			consultsPrefs:  false,
			expectedSource: domain.Auto,
			expectedTarget: "es",
		},
		{
			name:           "missing target falls back to stored default",
			req:            testutil.NewTestRequest("hello", "", ""),
			storedTarget:   "es",
			storedFound:    true,
			consultsPrefs:  true,
			expectedSource: domain.Auto,
			expectedTarget: "es",
		},
		{
			name:           "live target beats stored default",
			req:            testutil.NewTestRequest("hello", "", ""),
			liveTarget:     "fr",
			storedTarget:   "es",
			storedFound:    true,
			consultsPrefs:  false,
			expectedSource: domain.Auto,
			expectedTarget: "fr",
		},
		{
			name:           "explicit target beats live target",
			req:            testutil.NewTestRequest("hello", "", "de"),
			liveTarget:     "fr",
			consultsPrefs:  false,
			expectedSource: domain.Auto,
			expectedTarget: "de",
		},
		{
			name:          "no target anywhere",
			req:           testutil.NewTestRequest("hello", "", ""),
			storedFound:   false,
			consultsPrefs: true,
			expectedError: domain.ErrNoTargetLanguage,
		},
		{
			name:          "unsupported explicit target",
			req:           testutil.NewTestRequest("hello", "", "xx"),
			consultsPrefs: false,
			expectedError: domain.ErrUnsupportedLanguage,
		},
		{
			name:          "unsupported explicit source",
			req:           testutil.NewTestRequest("hello", "zz", "es"),
			consultsPrefs: false,
			expectedError: domain.ErrUnsupportedLanguage,
		},
		{
			name:          "preference lookup failure propagates",
			req:           testutil.NewTestRequest("hello", "", ""),
			storedError:   fmt.Errorf("db down"),
			consultsPrefs: true,
			expectedError: nil, // plain wrapped error, asserted below
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPrefs := new(testutil.MockPreferenceRepository)
			if tt.consultsPrefs {
				mockPrefs.On("Target", tt.req.UserID).Return(tt.storedTarget, tt.storedFound, tt.storedError)
			}

			resolver := NewResolver(mockPrefs)

			source, target, err := resolver.Resolve(tt.req, tt.liveTarget)

			switch {
			case tt.storedError != nil:
				assert.Error(t, err)
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedSource, source)
				assert.Equal(t, tt.expectedTarget, target)
			}

			mockPrefs.AssertExpectations(t)
		})
	}
}
