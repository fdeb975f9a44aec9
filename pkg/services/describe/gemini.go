package describe

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	genai "google.golang.org/genai"
)

var ErrInvalidJSON = errors.New("describe: invalid JSON from model")

const measurePrompt = `For each DAX measure below, return a concise natural language description of the measure.
Output only valid JSON where keys are the measure names and values are the descriptions.`

const pagePrompt = `For each report page below, return a concise natural language summary of what the page shows,
based on its visual titles, used fields and measures.
Output only valid JSON where keys are the page names and values are the summaries.`

// GeminiDescriber generates descriptions through the Gemini API.
type GeminiDescriber struct {
	cli   *genai.Client
	model string
}

func NewGeminiDescriber(ctx context.Context, model string) (*GeminiDescriber, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiDescriber{cli: cli, model: model}, nil
}

func (g *GeminiDescriber) DescribeMeasures(ctx context.Context, measures []MeasureInput) (map[string]string, error) {
	byName := make(map[string]string, len(measures))
	for _, m := range measures {
		byName[m.Name] = m.Expression
	}
	return g.generate(ctx, measurePrompt, byName)
}

func (g *GeminiDescriber) DescribePages(ctx context.Context, pages []PageInput) (map[string]string, error) {
	return g.generate(ctx, pagePrompt, pages)
}

// generate sends the prompt plus JSON-serialized input and expects a JSON
// object mapping names to descriptions back.
func (g *GeminiDescriber) generate(ctx context.Context, prompt string, input any) (map[string]string, error) {
	payload, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal input: %w", err)
	}
	full := prompt + "\n\n[INPUT JSON]\n" + string(payload)

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		resp, err := g.cli.Models.GenerateContent(ctx, g.model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
			&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
		)
		if err != nil {
			lastErr = err
		} else if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = ErrInvalidJSON
		} else {
			var descriptions map[string]string
			if err := json.Unmarshal([]byte(resp.Candidates[0].Content.Parts[0].Text), &descriptions); err != nil {
				lastErr = ErrInvalidJSON
			} else {
				return descriptions, nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(300*(1<<attempt)) * time.Millisecond):
		}
	}
	return nil, lastErr
}
