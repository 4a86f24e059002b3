package changelog

import (
	"errors"
	"strings"
)

// NoUpdateToken is the exact response that declines a changelog update.
const NoUpdateToken = "NO_UPDATE_NEEDED"

// entryHeaderPrefix starts every version header, e.g. "## [1.2.0] - May 2025".
const entryHeaderPrefix = "## ["

// ErrEmptyResponse is returned when the generated text is blank.
var ErrEmptyResponse = errors.New("generation returned an empty response")

// Response is generated text after validation.
type Response struct {
	// Entry is the changelog entry to splice, trimmed. Empty when NoUpdate.
	Entry string
	// NoUpdate is true when the generator declined an update.
	NoUpdate bool
	// Discarded is any preamble removed from before the first version header.
	Discarded string
}

// HasHeader reports whether the entry starts with a version header.
func (r Response) HasHeader() bool {
	return strings.HasPrefix(r.Entry, entryHeaderPrefix)
}

// ParseResponse validates raw generated text. The exact NoUpdateToken means
// no update; otherwise everything before the first "## [" is discarded. Text
// without any version header is returned as-is for the caller to judge.
func ParseResponse(raw string) (Response, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Response{}, ErrEmptyResponse
	}

	if text == NoUpdateToken {
		return Response{NoUpdate: true}, nil
	}

	var resp Response
	if idx := strings.Index(text, entryHeaderPrefix); idx > 0 {
		resp.Discarded = strings.TrimSpace(text[:idx])
		text = text[idx:]

		// a discarded opening fence leaves its closing fence behind
		if strings.Contains(resp.Discarded, "```") {
			text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		}
	}

	resp.Entry = strings.TrimSpace(text)
	return resp, nil
}

// NormalizeVersion normalizes a version string by removing the "v" prefix.
// This allows accepting both "v0.6.0" and "0.6.0" as input.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")
}
