package repos

import (
	"strings"

	"github.com/jmoiron/sqlx"
)

// SettingsRepo is the generic key/value settings store shared by the
// admin panel. Values are plain strings; typed views live in the
// services that own the keys.
type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

type settingRow struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

// GetMany reads all requested keys in one batched query. Keys without a
// stored value are simply absent from the result. A missing settings
// table is treated as "no settings", not an error.
func (r *SettingsRepo) GetMany(keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(`SELECT key, value FROM settings WHERE key IN (?)`, keys)
	if err != nil {
		return nil, err
	}

	var rows []settingRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		if isMissingTable(err) {
			return out, nil
		}
		return nil, err
	}
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// Get reads a single key; missing keys return "".
func (r *SettingsRepo) Get(key string) (string, error) {
	vals, err := r.GetMany(key)
	if err != nil {
		return "", err
	}
	return vals[key], nil
}

const upsertSetting = `
	INSERT INTO settings(key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`

// Set upserts one key.
func (r *SettingsRepo) Set(key, value string) error {
	_, err := r.db.Exec(upsertSetting, key, value)
	return err
}

// SetMany upserts all pairs in one transaction: either every key is
// written or none is.
func (r *SettingsRepo) SetMany(kv map[string]string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for k, v := range kv {
		if _, err := tx.Exec(upsertSetting, k, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func isMissingTable(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "no such table")
}
