package nvidia

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"renderapi/internal/domain"
)

// UnexpectedFormatError is returned when a 200 response carries neither an
// image nor an artifacts list. It matches domain.ErrEmptyResponse.
type UnexpectedFormatError struct {
	Keys []string
}

func (e *UnexpectedFormatError) Error() string {
	return fmt.Sprintf("nvidia: unexpected response format (keys: %s)", strings.Join(e.Keys, ", "))
}

func (e *UnexpectedFormatError) Unwrap() error {
	return domain.ErrEmptyResponse
}

type artifact struct {
	Base64       string `json:"base64"`
	FinishReason string `json:"finishReason,omitempty"`
	Seed         int64  `json:"seed,omitempty"`
}

// ExtractImage normalizes the two response shapes the image endpoints use.
// A top-level "image" wins; otherwise the base64 of the first artifact is used.
func ExtractImage(raw []byte) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", fmt.Errorf("nvidia: decode response: %w", err)
	}

	if v, ok := fields["image"]; ok {
		var image string
		if err := json.Unmarshal(v, &image); err == nil && image != "" {
			return image, nil
		}
		return "", &UnexpectedFormatError{Keys: sortedKeys(fields)}
	}

	if v, ok := fields["artifacts"]; ok {
		var artifacts []artifact
		if err := json.Unmarshal(v, &artifacts); err == nil && len(artifacts) > 0 && artifacts[0].Base64 != "" {
			return artifacts[0].Base64, nil
		}
	}

	return "", &UnexpectedFormatError{Keys: sortedKeys(fields)}
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
