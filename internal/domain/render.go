package domain

// RenderStatusSuccess is the only status a successful render reports.
const RenderStatusSuccess = "success"

// DefaultControlType is assumed when the caller omits control_type.
const DefaultControlType = "scribble"

// RenderResult is the success payload returned to the caller.
type RenderResult struct {
	Status     string `json:"status"`
	ImageData  string `json:"image_data"`
	PromptUsed string `json:"prompt_used"`
}
