// Package properties decodes the semi-structured properties payload carried
// on raw analytics events. The upstream tracker emits Python-repr style
// dictionaries with single quotes, so payloads are normalized to JSON before
// structured decoding.
package properties

import (
	"encoding/json"
	"strings"
)

// Payload is the decoded properties document. Numeric measures are pointers:
// nil means the field was absent or unusable, which the fact builder stores
// as SQL NULL.
type Payload struct {
	UserAgent        string
	Language         string
	Referrer         string
	FileSizeBytes    *int64
	ProcessingTimeMS *int64
}

// Parse decodes a raw payload string. The boolean reports whether a document
// was actually decoded; callers treat false as "payload unavailable" rather
// than an error.
func Parse(raw string) (Payload, bool) {
	if strings.TrimSpace(raw) == "" {
		return Payload{}, false
	}

	normalized := strings.ReplaceAll(raw, "'", `"`)
	var doc map[string]any
	if err := json.Unmarshal([]byte(normalized), &doc); err != nil {
		return Payload{}, false
	}

	return Payload{
		UserAgent:        stringField(doc, "user_agent"),
		Language:         stringField(doc, "language"),
		Referrer:         stringField(doc, "referrer"),
		FileSizeBytes:    intField(doc, "file_size"),
		ProcessingTimeMS: intField(doc, "processing_time_ms"),
	}, true
}

func stringField(doc map[string]any, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

func intField(doc map[string]any, key string) *int64 {
	v, ok := doc[key].(float64)
	if !ok {
		return nil
	}
	n := int64(v)
	return &n
}
