package repos

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
)

// ErrDuplicateCard marks an insert rejected by the card_key uniqueness
// constraint. Concurrent pulls for the same upstream key race to this
// insert; exactly one wins and the rest see this error.
var ErrDuplicateCard = errors.New("duplicate card key")

type CardRepo struct{ db *sqlx.DB }

func NewCardRepo(db *sqlx.DB) *CardRepo { return &CardRepo{db: db} }

// Row used by the admin cards page
type CardRow struct {
	ID           string `db:"id"`
	ProductID    string `db:"product_id"`
	ProductTitle string `db:"product_title"`
	CardKey      string `db:"card_key"`
	PulledAt     string `db:"pulled_at"`
}

// Insert stores one pulled card. Uniqueness violations come back as
// ErrDuplicateCard; any other store failure passes through with its
// message intact.
func (r *CardRepo) Insert(productID, cardKey string) error {
	_, err := r.db.Exec(`
		INSERT INTO cards(id, product_id, card_key, pulled_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	`, uuid.NewString(), productID, cardKey)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateCard
	}
	return err
}

// ListLatest returns recent cards with product titles (for /admin/cards).
func (r *CardRepo) ListLatest(limit int) ([]CardRow, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []CardRow
	err := r.db.Select(&rows, `
		SELECT c.id, c.product_id, p.title AS product_title, c.card_key, c.pulled_at
		FROM cards c
		JOIN products p ON p.id = c.product_id
		ORDER BY datetime(c.pulled_at) DESC, c.id
		LIMIT ?
	`, limit)
	return rows, err
}

// CountByProduct returns pulled-card counts keyed by product id.
func (r *CardRepo) CountByProduct() (map[string]int, error) {
	var rows []struct {
		ProductID string `db:"product_id"`
		N         int    `db:"n"`
	}
	if err := r.db.Select(&rows, `
		SELECT product_id, COUNT(*) AS n FROM cards GROUP BY product_id
	`); err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.ProductID] = row.N
	}
	return out, nil
}

// sqlite extended result codes for unique/primary-key constraint hits
const (
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// isUniqueViolation prefers the driver's typed error; the substring
// check remains for anything else wired through sqlx.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqliteConstraintUnique || se.Code() == sqliteConstraintPrimaryKey
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "constraint failed")
}
