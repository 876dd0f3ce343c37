package reasoning

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Parser extracts a reasoning step from raw model output following the
// Thought / Action / Action Input / Answer text format.
type Parser struct{}

func NewParser() Parser {
	return Parser{}
}

var (
	answerRe = regexp.MustCompile(`(?s)\s*Thought:(.*?)Answer:(.*)`)
	actionRe = regexp.MustCompile(`(?s)\s*Thought:(.*?)Action:(.*?)Action Input:(.*)`)
)

// Parse turns one model message into a reasoning step. The streaming flag
// is part of the parser contract; the engine always passes false until a
// streaming mode exists.
func (Parser) Parse(text string, streaming bool) (Step, error) {
	if !strings.Contains(text, "Thought:") {
		// The model answered directly without following the
		// thought-action format.
		return ResponseStep{
			Thought:  "(implicit) I can answer without any more tools.",
			Response: strings.TrimSpace(text),
		}, nil
	}

	if strings.Contains(text, "Answer:") {
		m := answerRe.FindStringSubmatch(text)
		if m == nil {
			return nil, fmt.Errorf("could not extract final answer from %q", text)
		}
		return ResponseStep{
			Thought:  strings.TrimSpace(m[1]),
			Response: strings.TrimSpace(m[2]),
		}, nil
	}

	if strings.Contains(text, "Action:") {
		m := actionRe.FindStringSubmatch(text)
		if m == nil {
			return nil, fmt.Errorf("could not extract tool use from %q", text)
		}
		input, err := parseActionInput(m[3])
		if err != nil {
			return nil, err
		}
		return ActionStep{
			Thought:     strings.TrimSpace(m[1]),
			Action:      strings.TrimSpace(firstLine(m[2])),
			ActionInput: input,
		}, nil
	}

	return nil, fmt.Errorf("could not extract reasoning step from %q", text)
}

// parseActionInput decodes the JSON object between the outermost braces.
// Models routinely emit almost-JSON (single quotes, trailing commas), so a
// failed decode goes through jsonrepair before giving up.
func parseActionInput(raw string) (map[string]any, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("action input is not a JSON object: %q", strings.TrimSpace(raw))
	}
	candidate := raw[start : end+1]

	var args map[string]any
	if err := json.Unmarshal([]byte(candidate), &args); err == nil {
		return args, nil
	}

	repaired, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		return nil, fmt.Errorf("could not repair action input %q: %w", candidate, err)
	}
	if err := json.Unmarshal([]byte(repaired), &args); err != nil {
		return nil, fmt.Errorf("could not decode action input %q: %w", candidate, err)
	}
	return args, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
