package gpt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tuneguess/api/internal/llm"
	"tuneguess/api/internal/score"
)

// verdictSchema keeps the reply strictly typed; the Responses API rejects
// anything that does not match.
var verdictSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"match_type": map[string]any{"type": "string"},
		"score":      map[string]any{"type": "integer", "minimum": 0, "maximum": 1000},
		"reasoning":  map[string]any{"type": "string"},
	},
	"required":             []any{"match_type", "score", "reasoning"},
	"additionalProperties": false,
}

func (e *Engine) Judge(ctx context.Context, in score.JudgeInput) (score.Verdict, error) {
	if e.APIKey == "" {
		return score.Verdict{}, fmt.Errorf("OPENAI_API_KEY is empty")
	}
	model := e.Model
	if strings.TrimSpace(model) == "" {
		model = "gpt-4o-mini"
	}

	body := map[string]any{
		"model": model,
		"input": []any{
			map[string]any{
				"role": "system",
				"content": []any{
					map[string]any{"type": "input_text", "text": llm.SystemPrompt},
				},
			},
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "input_text", "text": llm.UserMessage(in)},
				},
			},
		},
		"temperature": 0,
		"text": map[string]any{
			"format": map[string]any{
				"type":   "json_schema",
				"name":   "song_guess_verdict",
				"strict": true,
				"schema": verdictSchema,
			},
		},
	}

	payload, _ := json.Marshal(body)
	req, _ := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/responses", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return score.Verdict{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return score.Verdict{}, fmt.Errorf("openai judge %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	raw, _ := io.ReadAll(resp.Body)
	out := extractResponsesText(raw)
	if strings.TrimSpace(out) == "" {
		return score.Verdict{}, fmt.Errorf("responses: empty output; body=%s", truncateBytes(raw, 1024))
	}
	return llm.ParseVerdict(out)
}

// extractResponsesText pulls the model text out of the Responses API
// envelope: `output_text` when present, otherwise the text segments under
// `output[i].content[j].text`.
func extractResponsesText(raw []byte) string {
	type content struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	type output struct {
		Content []content `json:"content"`
		Role    string    `json:"role,omitempty"`
	}
	var env struct {
		Output     []output `json:"output"`
		OutputText string   `json:"output_text"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	if s := strings.TrimSpace(env.OutputText); s != "" {
		return s
	}
	var b strings.Builder
	for _, o := range env.Output {
		for _, c := range o.Content {
			if strings.TrimSpace(c.Text) == "" {
				continue
			}
			if c.Type == "output_text" || c.Type == "text" || c.Type == "" {
				if b.Len() > 0 {
					b.WriteByte('\n')
				}
				b.WriteString(c.Text)
			}
		}
	}
	return b.String()
}
