package nvidia

import (
	"fmt"
	"strings"
)

// Kind selects the request shape an endpoint expects.
type Kind string

const (
	// KindSDXL speaks the Stable Diffusion XL weighted text_prompts format.
	KindSDXL Kind = "sdxl"
	// KindFlux speaks the flat Flux prompt format.
	KindFlux Kind = "flux"
)

const (
	DefaultSDXLURL = "https://ai.api.nvidia.com/v1/genai/stabilityai/stable-diffusion-xl"
	DefaultFluxURL = "https://ai.api.nvidia.com/v1/genai/black-forest-labs/flux.1-kontext-dev"
)

// NegativePrompt lists the qualities the SDXL request weighs against.
const NegativePrompt = "blurry, low quality, illustration, cartoon, painting, drawing, sketch, ugly, distorted"

// ParseKind validates free-form input from configuration.
func ParseKind(v string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(v))) {
	case KindSDXL:
		return KindSDXL, nil
	case KindFlux:
		return KindFlux, nil
	default:
		return "", fmt.Errorf("nvidia: unknown provider kind %q", v)
	}
}

// Endpoint is one entry of the provider chain.
type Endpoint struct {
	Name string
	Kind Kind
	URL  string
}

func (e Endpoint) String() string {
	if e.Name != "" {
		return e.Name
	}
	return string(e.Kind)
}

type textPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type sdxlPayload struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    float64      `json:"cfg_scale"`
	Sampler     string       `json:"sampler"`
	Seed        int          `json:"seed"`
	Steps       int          `json:"steps"`
}

type fluxPayload struct {
	Prompt   string  `json:"prompt"`
	Steps    int     `json:"steps"`
	CfgScale float64 `json:"cfg_scale"`
	Seed     int     `json:"seed"`
}

// BuildPayload returns the request body for kind. The uploaded sketch is not
// part of either shape; both endpoints are driven as text-to-image.
func BuildPayload(kind Kind, prompt string) (any, error) {
	switch kind {
	case KindSDXL:
		return sdxlPayload{
			TextPrompts: []textPrompt{
				{Text: prompt, Weight: 1},
				{Text: NegativePrompt, Weight: -1},
			},
			CfgScale: 5,
			Sampler:  "K_EULER_ANCESTRAL",
			Seed:     0,
			Steps:    25,
		}, nil
	case KindFlux:
		return fluxPayload{
			Prompt:   prompt,
			Steps:    20,
			CfgScale: 3.5,
			Seed:     0,
		}, nil
	default:
		return nil, fmt.Errorf("nvidia: unsupported provider kind %q", kind)
	}
}
