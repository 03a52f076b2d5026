package services

import (
	"fmt"
	"strings"

	"shoppanel/internal/domain"
	"shoppanel/internal/repos"
)

const keyUpdateDismissed = "update_notice_dismissed"

// UpdateService backs the admin update banner: it polls a
// version-hosting API for the latest release and remembers which
// version's notice the operator dismissed.
type UpdateService struct {
	Settings *repos.SettingsRepo
	Version  string // running app version
	URL      string // version-hosting API endpoint
}

func NewUpdateService(settings *repos.SettingsRepo, version, url string) *UpdateService {
	return &UpdateService{Settings: settings, Version: version, URL: url}
}

// Check fetches the latest published version and reports whether an
// update notice should show. Upstream trouble is a soft result with an
// error code, never a failure of the caller's request.
func (s *UpdateService) Check() domain.UpdateStatus {
	st := domain.UpdateStatus{Current: s.Version}
	if strings.TrimSpace(s.URL) == "" {
		st.Error = "update_api_unconfigured"
		return st
	}

	res, err := fetchRemote(strings.TrimSpace(s.URL), "")
	if err != nil {
		st.Error = err.Error()
		return st
	}
	if res.Status < 200 || res.Status > 299 {
		st.Error = fmt.Sprintf("update_request_failed_%d", res.Status)
		return st
	}

	st.Latest, st.Notes, st.URL = parseVersionPayload(res.Body)
	if st.Latest == "" {
		st.Error = "update_version_missing"
		return st
	}

	st.Available = st.Latest != s.Version
	if dismissed, err := s.Settings.Get(keyUpdateDismissed); err == nil && dismissed == st.Latest {
		st.Dismissed = true
	}
	return st
}

// Dismiss hides the notice for one specific version; a newer release
// will surface the banner again.
func (s *UpdateService) Dismiss(version string) error {
	version = strings.TrimSpace(version)
	if version == "" {
		return fmt.Errorf("missing version")
	}
	return s.Settings.Set(keyUpdateDismissed, version)
}

// parseVersionPayload tolerates the common release-feed shapes:
// {"version": ...} or {"tag_name": ...}, with optional notes/url.
func parseVersionPayload(body any) (version, notes, link string) {
	m, ok := body.(map[string]any)
	if !ok {
		if s, ok := body.(string); ok {
			return strings.TrimSpace(s), "", ""
		}
		return "", "", ""
	}
	for _, k := range []string{"version", "tag_name"} {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			version = strings.TrimSpace(s)
			break
		}
	}
	for _, k := range []string{"notes", "body"} {
		if s, ok := m[k].(string); ok && s != "" {
			notes = s
			break
		}
	}
	for _, k := range []string{"url", "html_url"} {
		if s, ok := m[k].(string); ok && s != "" {
			link = s
			break
		}
	}
	return version, notes, link
}
