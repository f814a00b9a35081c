package credibility

import (
	"regexp"
	"strconv"
	"strings"
)

// Parse failure messages. A failed parse is a modeled outcome, not an error:
// the caller gets a nil score and one of these as the reason.
const (
	ReasonEmptyResponse = "Empty response from model."
	ReasonUnparseable   = "Unable to parse credibility score from model response."
)

// responsePattern matches the requested output shape anywhere in the model
// text. The reason capture is greedy to the end of input so multi-line
// reasons survive intact.
var responsePattern = regexp.MustCompile(`(?s)Credibility Score:\s*(\d+).*?Reason:(.*)`)

// ParseModelResponse extracts a (score, reason) pair from free-text model
// output. The score is nil when the response is empty or does not contain the
// requested format; the reason always carries an explanatory message. No range
// validation happens here. Malformed input never panics.
func ParseModelResponse(raw string) (*int, string) {
	if strings.TrimSpace(raw) == "" {
		return nil, ReasonEmptyResponse
	}

	match := responsePattern.FindStringSubmatch(raw)
	if match == nil {
		return nil, ReasonUnparseable
	}

	score, err := strconv.Atoi(match[1])
	if err != nil {
		return nil, ReasonUnparseable
	}

	return &score, strings.TrimSpace(match[2])
}
