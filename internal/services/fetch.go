package services

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// fetchResult is one upstream response: HTTP status, the content type
// the server claimed, and the body decoded as far as we can take it
// (any JSON value, or the raw text as string).
type fetchResult struct {
	Status      int
	ContentType string
	Body        any
}

// No Timeout on purpose: a pull has no latency budget of its own and
// callers wrap it when they need one.
var fetchClient = &http.Client{}

// fetchRemote issues a single GET against an operator-configured URL.
// The pull must observe live upstream state, so response caching is
// disabled via request headers. A bearer token is attached when set.
func fetchRemote(url, token string) (fetchResult, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fetchResult{}, err
	}
	req.Header.Set("Accept", "application/json, text/plain;q=0.9, */*;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := fetchClient.Do(req)
	if err != nil {
		return fetchResult{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetchResult{}, err
	}

	res := fetchResult{Status: resp.StatusCode, ContentType: resp.Header.Get("Content-Type")}
	if strings.Contains(res.ContentType, "application/json") {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			res.Body = decoded
			return res, nil
		}
		// mislabeled JSON: fall through to raw text
	}
	res.Body = string(raw)
	return res, nil
}
