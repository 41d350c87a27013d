package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"viola/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestPreferenceRepo_Target(t *testing.T) {
	tests := []struct {
		name           string
		userID         int64
		mockRows       *sqlmock.Rows
		mockError      error
		expectedTarget domain.LanguageCode
		expectedFound  bool
		expectedError  bool
	}{
		{
			name:           "preference exists",
			userID:         123,
			mockRows:       sqlmock.NewRows([]string{"target_lang"}).AddRow("es"),
			mockError:      nil,
			expectedTarget: "es",
			expectedFound:  true,
			expectedError:  false,
		},
		{
			name:           "no preference",
			userID:         456,
			mockRows:       nil,
			mockError:      sql.ErrNoRows,
			expectedTarget: "",
			expectedFound:  false,
			expectedError:  false,
		},
		{
			name:          "database error",
			userID:        789,
			mockRows:      nil,
			mockError:     fmt.Errorf("connection refused"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewPreferenceRepo(db)

			query := "SELECT target_lang FROM preferences WHERE user_id = \\$1"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnRows(tt.mockRows)
			}

			target, found, err := repo.Target(tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedFound, found)
				assert.Equal(t, tt.expectedTarget, target)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPreferenceRepo_SetTarget(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPreferenceRepo(db)

	userID := int64(123)

	mock.ExpectExec("INSERT INTO preferences").
		WithArgs(userID, "fr").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.SetTarget(userID, "fr")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
