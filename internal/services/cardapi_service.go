package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"shoppanel/internal/domain"
	"shoppanel/internal/repos"
)

// Settings keys for the per-product card API config. The string
// namespacing is the settings table's contract; everything above the
// repo works with the typed CardAPIConfig record.
const (
	keyCardAPIEnabled = "cards_api_enabled_"
	keyCardAPIURL     = "cards_api_url_"
	keyCardAPIToken   = "cards_api_token_"
)

type CardAPIService struct {
	Settings *repos.SettingsRepo
	Cards    *repos.CardRepo
}

func NewCardAPIService(settings *repos.SettingsRepo, cards *repos.CardRepo) *CardAPIService {
	return &CardAPIService{Settings: settings, Cards: cards}
}

// GetProductCardAPIConfig resolves the per-product config from three
// settings keys in one batched read. Missing keys default to
// empty/false; enabled is true iff the stored value is exactly "true".
func (s *CardAPIService) GetProductCardAPIConfig(productID string) (domain.CardAPIConfig, error) {
	enabledKey := keyCardAPIEnabled + productID
	urlKey := keyCardAPIURL + productID
	tokenKey := keyCardAPIToken + productID

	vals, err := s.Settings.GetMany(enabledKey, urlKey, tokenKey)
	if err != nil {
		return domain.CardAPIConfig{}, err
	}
	return domain.CardAPIConfig{
		Enabled: vals[enabledKey] == "true",
		URL:     strings.TrimSpace(vals[urlKey]),
		Token:   strings.TrimSpace(vals[tokenKey]),
	}, nil
}

// SaveProductCardAPIConfig writes the three keys back, trimming and
// normalizing enabled to a boolean-as-string. The write is one
// transaction: a failed save never leaves a half-written config.
func (s *CardAPIService) SaveProductCardAPIConfig(productID string, cfg domain.CardAPIConfig) error {
	enabled := "false"
	if cfg.Enabled {
		enabled = "true"
	}
	return s.Settings.SetMany(map[string]string{
		keyCardAPIEnabled + productID: enabled,
		keyCardAPIURL + productID:     strings.TrimSpace(cfg.URL),
		keyCardAPIToken + productID:   strings.TrimSpace(cfg.Token),
	})
}

// PullOneCardFromAPI runs one pull attempt: resolve config, fetch,
// extract, insert. Every failure mode is folded into the outcome value;
// no retries anywhere in the chain. A disabled product is a skip, not
// an alarm.
func (s *CardAPIService) PullOneCardFromAPI(productID string) domain.PullOutcome {
	cfg, err := s.GetProductCardAPIConfig(productID)
	if err != nil {
		return domain.PullOutcome{Error: err.Error()}
	}
	if !cfg.Enabled {
		return domain.PullOutcome{Skipped: true, Error: "api_disabled"}
	}
	if cfg.URL == "" {
		return domain.PullOutcome{Error: "api_url_missing"}
	}

	target, err := url.Parse(cfg.URL)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return domain.PullOutcome{Error: "api_url_invalid"}
	}

	res, err := fetchRemote(target.String(), cfg.Token)
	if err != nil {
		// transport faults share the unclassified bucket
		return domain.PullOutcome{Error: err.Error()}
	}
	if res.Status < 200 || res.Status > 299 {
		return domain.PullOutcome{Error: fmt.Sprintf("api_request_failed_%d", res.Status)}
	}

	cardKey := extractCardKey(res.Body)
	if cardKey == "" {
		return domain.PullOutcome{Error: "api_card_missing"}
	}

	if err := s.Cards.Insert(productID, cardKey); err != nil {
		if errors.Is(err, repos.ErrDuplicateCard) {
			return domain.PullOutcome{Error: "api_card_duplicate"}
		}
		return domain.PullOutcome{Error: err.Error()}
	}

	return domain.PullOutcome{OK: true, CardKey: cardKey}
}
