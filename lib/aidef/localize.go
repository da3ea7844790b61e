// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

package aidef

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

//go:embed data/jpen.jsonc
var bundledTranslations []byte

// Localizer translates display strings (record names and class names
// authored in Japanese) to English. Read-only after construction.
type Localizer struct {
	translations map[string]string
}

// NewLocalizer parses the bundled translation map.
func NewLocalizer() (*Localizer, error) {
	return parseLocalizer(bundledTranslations, "bundled translations")
}

// LoadLocalizer parses a translation map from a JSONC file.
func LoadLocalizer(path string) (*Localizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading translations %s: %w", path, err)
	}
	return parseLocalizer(data, path)
}

func parseLocalizer(data []byte, source string) (*Localizer, error) {
	var raw map[string]string
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	return &Localizer{translations: raw}, nil
}

// Translate returns the translation of s, or s itself when the map
// has no entry. Identity on miss means untranslated names display
// as-is rather than disappearing.
func (l *Localizer) Translate(s string) string {
	if t, ok := l.translations[s]; ok {
		return t
	}
	return s
}
