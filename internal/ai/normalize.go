package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const fence = "```"

var errNotObject = errors.New("model output is not a JSON object")

// StripCodeFence removes a surrounding markdown code fence, with or without
// a language tag, from model output.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, fence) {
		return text
	}
	nl := strings.IndexByte(text, '\n')
	if nl < 0 {
		return ""
	}
	body := text[nl+1:]
	if end := strings.LastIndex(body, fence); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// Decode parses fenced or bare model output into T. Only a top-level JSON
// object is accepted.
func Decode[T any](text string) (T, error) {
	var out T
	body := StripCodeFence(text)
	if !gjson.Valid(body) {
		return out, fmt.Errorf("%w: invalid json", errNotObject)
	}
	if !gjson.Parse(body).IsObject() {
		return out, errNotObject
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return out, fmt.Errorf("decode model output: %w", err)
	}
	return out, nil
}
