/*
Copyright © 2025 Zen Tools Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package registry parses and rewrites the browser's profile registry
// files (profiles.ini and installs.ini). It is not a general INI
// library: it supports exactly the two section families the registry
// format uses, Profile<N> and Install<hash>.
//
// The registry files are unlocked shared state also rewritten by the
// browser itself. The package therefore exposes an explicit
// load -> merge -> store pipeline over plain text, with no file handle
// held across the merge, and accepts last-writer-wins semantics.
package registry

import (
	"sort"
	"strings"
)

// Section family prefixes and the keys this package rewrites.
const (
	profilePrefix = "Profile"
	installPrefix = "Install"

	keyName       = "Name"
	keyPath       = "Path"
	keyIsRelative = "IsRelative"
	keyDefault    = "Default"
	keyLocked     = "Locked"
)

// Section is one INI section with keys in declaration order.
// Duplicate keys keep the last value, matching browser behavior.
type Section struct {
	Name   string
	keys   []string
	values map[string]string
}

// NewSection creates an empty section with the given header name.
func NewSection(name string) *Section {
	return &Section{Name: name, values: make(map[string]string)}
}

// Set assigns a key, preserving the position of an existing key.
func (s *Section) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value for key, or "".
func (s *Section) Get(key string) string {
	return s.values[key]
}

// Keys returns the key names in declaration order.
func (s *Section) Keys() []string {
	return s.keys
}

// IsProfile reports whether the section belongs to the Profile family.
func (s *Section) IsProfile() bool {
	return strings.HasPrefix(s.Name, profilePrefix)
}

// IsInstall reports whether the section belongs to the Install family.
func (s *Section) IsInstall() bool {
	return strings.HasPrefix(s.Name, installPrefix)
}

// InstallHash returns the opaque hash part of an Install section name.
func (s *Section) InstallHash() string {
	return strings.TrimPrefix(s.Name, installPrefix)
}

// Registry is an ordered list of parsed sections.
type Registry struct {
	Sections []*Section
}

// Parse builds a Registry from registry file text. The parser is
// deliberately tolerant: lines without "=", key lines outside any
// section, and blank lines are skipped, never rejected, so a
// partially-written or hand-edited registry still loads.
func Parse(content string) *Registry {
	reg := &Registry{}
	var current *Section

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			current = NewSection(line[1 : len(line)-1])
			reg.Sections = append(reg.Sections, current)
			continue
		}
		if current == nil {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		current.Set(strings.TrimSpace(k), strings.TrimSpace(v))
	}

	return reg
}

// Profiles returns the Profile-family sections in declaration order.
func (r *Registry) Profiles() []*Section {
	var out []*Section
	for _, s := range r.Sections {
		if s.IsProfile() {
			out = append(out, s)
		}
	}
	return out
}

// InstallHashes returns the hashes of all Install-family sections,
// sorted ascending. The hashes are opaque and owned by the browser;
// this package only ever copies them.
func (r *Registry) InstallHashes() []string {
	var out []string
	for _, s := range r.Sections {
		if s.IsInstall() {
			out = append(out, s.InstallHash())
		}
	}
	sort.Strings(out)
	return out
}

// FindProfile returns the first Profile section whose Name equals name,
// or nil.
func (r *Registry) FindProfile(name string) *Section {
	for _, s := range r.Profiles() {
		if s.Get(keyName) == name {
			return s
		}
	}
	return nil
}
