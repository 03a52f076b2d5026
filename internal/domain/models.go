package domain

type Product struct {
	ID          string  `db:"id"`
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Active      bool    `db:"active"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

// CardAPIConfig is the per-product upstream card API configuration,
// resolved on demand from the settings store (never cached).
type CardAPIConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	Token   string `json:"token"`
}

// PullOutcome reports a single pull attempt. Every failure mode of the
// pipeline ends up here as a string code; nothing escapes the
// orchestrator as an error.
type PullOutcome struct {
	OK      bool   `json:"ok"`
	Skipped bool   `json:"skipped,omitempty"`
	CardKey string `json:"cardKey,omitempty"`
	Error   string `json:"error,omitempty"`
}

// UpdateStatus is what the admin update banner polls for.
type UpdateStatus struct {
	Current   string `json:"current"`
	Latest    string `json:"latest,omitempty"`
	Available bool   `json:"available"`
	Dismissed bool   `json:"dismissed,omitempty"`
	Notes     string `json:"notes,omitempty"`
	URL       string `json:"url,omitempty"`
	Error     string `json:"error,omitempty"`
}
