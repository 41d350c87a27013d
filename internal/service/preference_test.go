package service

import (
	"fmt"
	"testing"

	"viola/internal/domain"
	"viola/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestPreferenceService_SetDefaultTarget(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		storesAs      domain.LanguageCode
		repoError     error
		expectedError error
	}{
		{
			name:     "valid code",
			raw:      "es",
			storesAs: "es",
		},
		{
			name:     "mixed case and whitespace normalized",
			raw:      "  ES ",
			storesAs: "es",
		},
		{
			name:          "unsupported code",
			raw:           "xx",
			expectedError: domain.ErrUnsupportedLanguage,
		},
		{
			name:      "repository failure",
			raw:       "es",
			storesAs:  "es",
			repoError: fmt.Errorf("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPrefs := new(testutil.MockPreferenceRepository)
			if tt.expectedError == nil {
				mockPrefs.On("SetTarget", int64(123), tt.storesAs).Return(tt.repoError)
			}

			svc := NewPreferenceService(mockPrefs, testutil.NewTestLogger())

			code, err := svc.SetDefaultTarget(123, tt.raw)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			case tt.repoError != nil:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.storesAs, code)
			}

			mockPrefs.AssertExpectations(t)
		})
	}
}

func TestPreferenceService_DefaultTarget(t *testing.T) {
	mockPrefs := new(testutil.MockPreferenceRepository)
	mockPrefs.On("Target", int64(123)).Return(domain.LanguageCode("es"), true, nil)

	svc := NewPreferenceService(mockPrefs, testutil.NewTestLogger())

	code, found, err := svc.DefaultTarget(123)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.LanguageCode("es"), code)
	mockPrefs.AssertExpectations(t)
}
