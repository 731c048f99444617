package nvidia

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultEndpoints is the built-in chain: SDXL first, Flux as the fallback.
func DefaultEndpoints() []Endpoint {
	return []Endpoint{
		{Name: "sdxl", Kind: KindSDXL, URL: DefaultSDXLURL},
		{Name: "flux", Kind: KindFlux, URL: DefaultFluxURL},
	}
}

type chainFile struct {
	Providers []struct {
		Name string `yaml:"name"`
		Kind string `yaml:"kind"`
		URL  string `yaml:"url"`
	} `yaml:"providers"`
}

// LoadEndpoints reads an ordered provider chain from a YAML file. An empty
// path returns DefaultEndpoints.
func LoadEndpoints(path string) ([]Endpoint, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultEndpoints(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("nvidia: read provider file: %w", err)
	}
	return ParseEndpoints(raw)
}

// ParseEndpoints decodes and validates a YAML provider chain.
func ParseEndpoints(raw []byte) ([]Endpoint, error) {
	var file chainFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("nvidia: decode provider file: %w", err)
	}
	if len(file.Providers) == 0 {
		return nil, errors.New("nvidia: provider file lists no providers")
	}
	endpoints := make([]Endpoint, 0, len(file.Providers))
	for i, p := range file.Providers {
		kind, err := ParseKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("providers[%d]: %w", i, err)
		}
		u, err := url.Parse(strings.TrimSpace(p.URL))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("providers[%d]: invalid url %q", i, p.URL)
		}
		name := strings.TrimSpace(p.Name)
		if name == "" {
			name = string(kind)
		}
		endpoints = append(endpoints, Endpoint{Name: name, Kind: kind, URL: u.String()})
	}
	return endpoints, nil
}
