// internal/nutrition/request.go
package nutrition

const (
	DefaultModel = "gpt-4o-mini"
	Temperature  = 0.3
	MaxTokens    = 200

	textInstruction = `You are a nutritional database. Convert the user's text into a JSON object with keys:
calories, protein, carbs, fat, and food_name. Use average nutritional values. Return ONLY the JSON.`

	imageInstruction = `You are a nutritional database. Analyze the food in this image and return a JSON object with keys:
calories, protein, carbs, fat, and food_name. Use average nutritional values for a typical serving.
Return ONLY the JSON, no additional text.`

	defaultImagePrompt = "Analyze this food image and provide nutritional information."
)

// CompletionRequest is the chat-completions payload sent through the gateway.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// Message content is either a string or a slice of ContentPart.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

// BuildTextRequest wraps a free-text meal description.
func BuildTextRequest(model, description string) CompletionRequest {
	return CompletionRequest{
		Model: modelOrDefault(model),
		Messages: []Message{
			{Role: "system", Content: textInstruction},
			{Role: "user", Content: description},
		},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	}
}

// BuildImageRequest wraps an already encoded image data URI and an optional prompt.
func BuildImageRequest(model, dataURI, prompt string) CompletionRequest {
	if prompt == "" {
		prompt = defaultImagePrompt
	}
	return CompletionRequest{
		Model: modelOrDefault(model),
		Messages: []Message{
			{Role: "system", Content: imageInstruction},
			{Role: "user", Content: []ContentPart{
				{Type: "text", Text: prompt},
				{Type: "image_url", ImageURL: &ImageURL{URL: dataURI}},
			}},
		},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	}
}

func modelOrDefault(model string) string {
	if model == "" {
		return DefaultModel
	}
	return model
}
