package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"

	"kicksranker/internal/domain"
)

type patternFile struct {
	Patterns []domain.Pattern `json:"patterns"`
}

// ReadPatterns loads a JSON5 pattern list from name and, when present, merges
// <base>.local.<ext> next to it on top. A missing base file is only an error
// if the local override is missing too.
func ReadPatterns(name string) ([]domain.Pattern, error) {
	var out patternFile
	found := false

	base, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if len(base) > 0 {
		if err := json5.Unmarshal(base, &out); err != nil {
			return nil, err
		}
		found = true
	}

	local := localName(name)
	override, err := os.ReadFile(local)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if len(override) > 0 {
		var o patternFile
		if err := json5.Unmarshal(override, &o); err != nil {
			return nil, fmt.Errorf("%s: %w", local, err)
		}
		if err := mergo.Merge(&out, o, mergo.WithOverride); err != nil {
			return nil, err
		}
		log.Printf("[config] merged pattern overrides from %s", local)
		found = true
	}

	if !found {
		return nil, os.ErrNotExist
	}
	for i := range out.Patterns {
		out.Patterns[i].Type = domain.PatternType(strings.ToLower(string(out.Patterns[i].Type)))
	}
	return out.Patterns, nil
}

// localName maps "dir/patterns.json5" to "dir/patterns.local.json5".
func localName(name string) string {
	dir, file := filepath.Split(name)
	ext := filepath.Ext(file)
	return filepath.Join(dir, strings.TrimSuffix(file, ext)+".local"+ext)
}
