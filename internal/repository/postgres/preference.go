package postgres

import (
	"database/sql"

	"viola/internal/domain"
)

// PreferenceRepo implements repository.PreferenceRepository
type PreferenceRepo struct {
	db *sql.DB
}

// NewPreferenceRepo creates a new preference repository
func NewPreferenceRepo(db *sql.DB) *PreferenceRepo {
	return &PreferenceRepo{db: db}
}

// SetTarget stores or overwrites the user's default target language
func (r *PreferenceRepo) SetTarget(userID int64, target domain.LanguageCode) error {
	query := `
		INSERT INTO preferences (user_id, target_lang, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id)
		DO UPDATE SET target_lang = $2, updated_at = now()
	`
	_, err := r.db.Exec(query, userID, string(target))
	return err
}

// Target returns the user's default target language
func (r *PreferenceRepo) Target(userID int64) (domain.LanguageCode, bool, error) {
	var target string
	query := `SELECT target_lang FROM preferences WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&target)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return domain.LanguageCode(target), true, nil
}
