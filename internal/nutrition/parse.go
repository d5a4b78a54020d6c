// internal/nutrition/parse.go
package nutrition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"quickcalories/internal/models"
)

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ParseCompletion decodes a chat-completions body into an estimate.
func ParseCompletion(body []byte) (models.NutritionEstimate, error) {
	var resp completionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.NutritionEstimate{}, invalidResponse("decode completion: %v", err)
	}
	if len(resp.Choices) == 0 {
		return models.NutritionEstimate{}, invalidResponse("no choices in completion")
	}
	content := resp.Choices[0].Message.Content
	if content == nil {
		return models.NutritionEstimate{}, invalidResponse("completion has no message content")
	}
	return ParseNutritionContent(*content)
}

// ParseNutritionContent strips code fences from model output, then decodes it strictly.
func ParseNutritionContent(content string) (models.NutritionEstimate, error) {
	cleaned := StripCodeFence(content)
	dec := json.NewDecoder(strings.NewReader(cleaned))
	var out struct {
		FoodName *string  `json:"food_name"`
		Calories *float64 `json:"calories"`
		Protein  *float64 `json:"protein"`
		Carbs    *float64 `json:"carbs"`
		Fat      *float64 `json:"fat"`
	}
	if err := dec.Decode(&out); err != nil {
		return models.NutritionEstimate{}, invalidResponse("decode nutrition json: %v", err)
	}
	if dec.More() {
		return models.NutritionEstimate{}, invalidResponse("trailing data after nutrition json")
	}
	if out.FoodName == nil || out.Calories == nil || out.Protein == nil || out.Carbs == nil || out.Fat == nil {
		return models.NutritionEstimate{}, invalidResponse("nutrition json is missing keys")
	}
	if *out.Calories < 0 || *out.Protein < 0 || *out.Carbs < 0 || *out.Fat < 0 {
		return models.NutritionEstimate{}, invalidResponse("nutrition values must be >= 0")
	}
	// 95.0 is accepted as 95; 95.5 is not.
	if *out.Calories != math.Trunc(*out.Calories) || *out.Calories > math.MaxInt32 {
		return models.NutritionEstimate{}, invalidResponse("calories must be a whole number, got %v", *out.Calories)
	}
	return models.NutritionEstimate{
		FoodName: *out.FoodName,
		Calories: int(*out.Calories),
		Protein:  *out.Protein,
		Carbs:    *out.Carbs,
		Fat:      *out.Fat,
	}, nil
}

// StripCodeFence removes a leading ```json or ``` and a trailing ``` wrapper.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// apiErrorFrom builds an APIError from a non-200 body, preferring error.message.
func apiErrorFrom(status int, body []byte) *APIError {
	msg := gjson.GetBytes(bytes.TrimSpace(body), "error.message")
	if msg.Type == gjson.String && msg.String() != "" {
		return &APIError{Status: status, Message: msg.String()}
	}
	return &APIError{Status: status, Message: fmt.Sprintf("HTTP %d", status)}
}

func isOK(status int) bool {
	return status == http.StatusOK
}
