package wallet

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// RecommendedSource is a well-known source suggested to new users.
type RecommendedSource struct {
	URL  string `yaml:"url" json:"url"`
	Name string `yaml:"name" json:"name"`
	Test bool   `yaml:"test" json:"test,omitempty"`
}

//go:embed recommended.yaml
var recommendedYAML []byte

var (
	recommendedOnce sync.Once
	recommended     []RecommendedSource
	recommendedErr  error
)

// RecommendedSources returns the built-in list of suggested sources.
// The returned slice is a copy.
func RecommendedSources() ([]RecommendedSource, error) {
	recommendedOnce.Do(func() {
		recommended, recommendedErr = ParseRecommendedSources(recommendedYAML)
	})
	if recommendedErr != nil {
		return nil, recommendedErr
	}
	return append([]RecommendedSource(nil), recommended...), nil
}

// ParseRecommendedSources decodes a YAML list in the format of the built-in one.
func ParseRecommendedSources(data []byte) ([]RecommendedSource, error) {
	var doc struct {
		Sources []RecommendedSource `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode recommended sources: %w", err)
	}
	for i, s := range doc.Sources {
		url, err := normalizeSourceURL(s.URL)
		if err != nil {
			return nil, fmt.Errorf("recommended source %d: %w", i+1, err)
		}
		doc.Sources[i].URL = url
	}
	return doc.Sources, nil
}
