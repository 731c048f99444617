package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"renderapi/internal/domain"
)

// EnhancePrompt wraps the user's description with fixed photorealism and
// quality phrasing. The user text is inserted verbatim.
func EnhancePrompt(prompt string) string {
	return fmt.Sprintf(
		"A photorealistic architectural visualization: %s. Professional render, detailed materials, realistic lighting, 8k resolution",
		prompt,
	)
}

// NormalizeControlType folds free-form control_type input. It is carried for
// API compatibility and logging only.
func NormalizeControlType(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return domain.DefaultControlType
	}
	return cases.Lower(language.Und).String(v)
}
