// Package themes resolves configured mod names against the remote
// theme store directory.
package themes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/agnivade/levenshtein"

	zenerrors "github.com/zen-tools/zenctl/pkg/errors"
)

// DefaultStoreURL is the static JSON directory of published themes.
const DefaultStoreURL = "https://raw.githubusercontent.com/zen-browser/theme-store/main/themes.json"

// fetchTimeout bounds the store download; the store is optional and a
// slow fetch should not stall the run.
const fetchTimeout = 15 * time.Second

// maxFuzzyDistance is the largest edit distance accepted when matching
// a configured mod name against store names.
const maxFuzzyDistance = 2

// Theme is one theme-store entry. The store carries more fields; only
// the ones used for resolution are decoded.
type Theme struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Homepage    string `json:"homepage"`
	Version     string `json:"version"`
}

// Store is the theme directory keyed by theme ID.
type Store map[string]Theme

// Fetch downloads and decodes the theme store. client may be nil, in
// which case a default client with a bounded timeout is used.
func Fetch(ctx context.Context, client *http.Client, url string) (Store, error) {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	if url == "" {
		url = DefaultStoreURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zenerrors.Wrap(zenerrors.ErrCodeUnavailable, "theme store request", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, zenerrors.Wrap(zenerrors.ErrCodeUnavailable, "fetching theme store", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, zenerrors.New(zenerrors.ErrCodeUnavailable,
			fmt.Sprintf("theme store returned status %d", resp.StatusCode))
	}

	var store Store
	if err := json.NewDecoder(resp.Body).Decode(&store); err != nil {
		return nil, zenerrors.Wrap(zenerrors.ErrCodeUnavailable, "decoding theme store", err)
	}
	return store, nil
}

// Resolve finds a theme by ID, then by exact name, then by closest
// name within maxFuzzyDistance. The returned fuzzy flag is true only
// for the last case so callers can log the correction.
func (s Store) Resolve(id, name string) (themeID string, theme Theme, fuzzy, ok bool) {
	if id != "" {
		if t, exists := s[id]; exists {
			return id, t, false, true
		}
	}
	if name == "" {
		return "", Theme{}, false, false
	}

	for tid, t := range s {
		if t.Name == name {
			return tid, t, false, true
		}
	}

	bestDistance := maxFuzzyDistance + 1
	for tid, t := range s {
		if d := levenshtein.ComputeDistance(name, t.Name); d < bestDistance {
			bestDistance = d
			themeID, theme = tid, t
		}
	}
	if bestDistance <= maxFuzzyDistance {
		return themeID, theme, true, true
	}
	return "", Theme{}, false, false
}

// InstallPageURL returns the manual install page for a theme ID.
func InstallPageURL(themeID string) string {
	return fmt.Sprintf("https://zen-browser.app/mods/%s/", themeID)
}
