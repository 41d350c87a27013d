package testutil

import (
	"context"

	"viola/internal/domain"
	"viola/internal/translate"

	"github.com/stretchr/testify/mock"
)

// MockPreferenceRepository is a mock for repository.PreferenceRepository
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) SetTarget(userID int64, target domain.LanguageCode) error {
	args := m.Called(userID, target)
	return args.Error(0)
}

func (m *MockPreferenceRepository) Target(userID int64) (domain.LanguageCode, bool, error) {
	args := m.Called(userID)
	return args.Get(0).(domain.LanguageCode), args.Bool(1), args.Error(2)
}

// MockTranslator is a mock for service.Translator
type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, text string, source, target domain.LanguageCode) (*translate.Result, error) {
	args := m.Called(ctx, text, source, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*translate.Result), args.Error(1)
}
