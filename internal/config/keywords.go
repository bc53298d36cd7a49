// Package config holds the immutable keyword configuration consumed by the
// signal detector. It is loaded once at startup and never mutated.
package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Keywords groups the ATS-favorable terms the detector matches. Groups only
// affect how the file reads; detection treats the union as a flat list.
type Keywords struct {
	Verbs     []string `mapstructure:"verbs"`
	Technical []string `mapstructure:"technical"`
	Soft      []string `mapstructure:"soft"`
	Tools     []string `mapstructure:"tools"`
}

// DefaultKeywords returns the built-in role-agnostic keyword set used when
// no keywords file is configured.
func DefaultKeywords() *Keywords {
	return &Keywords{
		Verbs:     []string{"managed", "developed", "led", "achieved", "designed", "implemented", "improved", "delivered", "launched", "optimized"},
		Technical: []string{"python", "java", "go", "sql", "javascript", "git", "api", "testing"},
		Soft:      []string{"communication", "teamwork", "leadership", "collaboration"},
		Tools:     []string{"docker", "kubernetes", "aws", "linux", "ci/cd"},
	}
}

// LoadKeywords reads a yaml keywords file. The file holds the same groups as
// the built-in set; any group may be omitted.
func LoadKeywords(path string) (*Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keywords file %q: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing keywords file %q: %w", path, err)
	}

	var keywords Keywords
	if err := mapstructure.Decode(raw, &keywords); err != nil {
		return nil, fmt.Errorf("decoding keywords file %q: %w", path, err)
	}

	if len(keywords.Flatten()) == 0 {
		return nil, fmt.Errorf("keywords file %q contains no keywords", path)
	}

	return &keywords, nil
}

// Flatten returns every configured keyword as one list, in group order.
func (k *Keywords) Flatten() []string {
	flat := make([]string, 0, len(k.Verbs)+len(k.Technical)+len(k.Soft)+len(k.Tools))
	flat = append(flat, k.Verbs...)
	flat = append(flat, k.Technical...)
	flat = append(flat, k.Soft...)
	flat = append(flat, k.Tools...)
	return flat
}
