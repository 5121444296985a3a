package prefs

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/zen-tools/zenctl/pkg/config"
	zenerrors "github.com/zen-tools/zenctl/pkg/errors"
)

//go:embed templates/user.js.tmpl
var userJSTemplate string

// zenPrefix marks preferences routed to the Zen-specific section of
// user.js. The prefix is stripped here and re-applied by the template.
const zenPrefix = "zen."

// RenderInput is the data handed to the user.js template.
type RenderInput struct {
	Preferences    []Pref
	ZenPreferences []Pref
	Workspaces     []config.Workspace
	ToolbarState   string
}

// FromConfig produces the plain and zen preference lists for a
// configuration document. The unified nested subtree takes precedence;
// the legacy flat keys are honored only when it is absent.
func FromConfig(cfg *config.Config) (plain, zen []Pref, err error) {
	if cfg.HasTree() {
		flat, err := Flatten(&cfg.Tree)
		if err != nil {
			return nil, nil, err
		}
		plain, zen = Split(flat)
		return plain, zen, nil
	}

	// Legacy format: flat "preferences" and "zen_preferences" maps plus
	// an optional nested "zen" subtree. Map iteration order is not
	// stable, so sort for deterministic output.
	for _, k := range sortedKeys(cfg.Preferences) {
		plain = append(plain, Pref{Key: k, Value: cfg.Preferences[k]})
	}
	for _, k := range sortedKeys(cfg.ZenPreferences) {
		zen = append(zen, Pref{Key: k, Value: cfg.ZenPreferences[k]})
	}
	if cfg.Zen.Kind != 0 {
		nested, err := Flatten(&cfg.Zen)
		if err != nil {
			return nil, nil, err
		}
		zen = append(zen, nested...)
	}
	return plain, zen, nil
}

// Split separates zen.*-prefixed preferences from the rest, stripping
// the prefix from the zen group.
func Split(flat []Pref) (plain, zen []Pref) {
	for _, p := range flat {
		if strings.HasPrefix(p.Key, zenPrefix) {
			zen = append(zen, Pref{Key: strings.TrimPrefix(p.Key, zenPrefix), Value: p.Value})
			continue
		}
		plain = append(plain, p)
	}
	return plain, zen
}

// RenderUserJS renders the user.js content for the given input.
func RenderUserJS(in RenderInput) ([]byte, error) {
	tmpl, err := template.New("user.js").Funcs(template.FuncMap{
		"jsLiteral": jsLiteral,
	}).Parse(userJSTemplate)
	if err != nil {
		return nil, zenerrors.Wrap(zenerrors.ErrCodeInternal, "user.js template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, in); err != nil {
		return nil, zenerrors.Wrap(zenerrors.ErrCodeInternal, "rendering user.js", err)
	}
	return buf.Bytes(), nil
}

// ToolbarState serializes the toolbar customization mapping as the
// compact JSON string stored in browser.uiCustomization.state.
// Returns "" when no toolbar section is configured.
func ToolbarState(cfg *config.Config) (string, error) {
	if cfg.Toolbar.Kind == 0 {
		return "", nil
	}
	var v any
	if err := cfg.Toolbar.Decode(&v); err != nil {
		return "", zenerrors.Wrap(zenerrors.ErrCodeInvalidConfig, "toolbar section", err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", zenerrors.Wrap(zenerrors.ErrCodeInvalidConfig, "toolbar section", err)
	}
	return string(b), nil
}

// jsLiteral renders a preference value as a user_pref argument.
// Booleans and numbers are bare, strings are quoted, and anything
// structured (sequences) is serialized to JSON and quoted.
func jsLiteral(v any) (string, error) {
	switch t := v.(type) {
	case bool, int, int64, uint64, float32, float64:
		return fmt.Sprintf("%v", t), nil
	case string:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		inner, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		b, err := json.Marshal(string(inner))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
