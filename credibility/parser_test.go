package credibility

import "testing"

func TestParseModelResponse(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		wantScore  *int
		wantReason string
	}{
		{
			name:       "well formed",
			raw:        "Credibility Score: 82\nReason: Claims are consistent with multiple reports.",
			wantScore:  intPtr(82),
			wantReason: "Claims are consistent with multiple reports.",
		},
		{
			name:       "multi line reason",
			raw:        "Credibility Score: 40\nReason: The article exaggerates.\nIt also omits context.",
			wantScore:  intPtr(40),
			wantReason: "The article exaggerates.\nIt also omits context.",
		},
		{
			name:       "preamble before format",
			raw:        "Here is my analysis.\nCredibility Score: 95\nReason: Reputable sourcing.",
			wantScore:  intPtr(95),
			wantReason: "Reputable sourcing.",
		},
		{
			name:       "score on same line as reason",
			raw:        "Credibility Score: 7 Reason: fabricated quotes",
			wantScore:  intPtr(7),
			wantReason: "fabricated quotes",
		},
		{
			name:       "empty response",
			raw:        "",
			wantScore:  nil,
			wantReason: ReasonEmptyResponse,
		},
		{
			name:       "whitespace only",
			raw:        "  \n\t ",
			wantScore:  nil,
			wantReason: ReasonEmptyResponse,
		},
		{
			name:       "free text without format",
			raw:        "I think this article is probably fine.",
			wantScore:  nil,
			wantReason: ReasonUnparseable,
		},
		{
			name:       "score missing digits",
			raw:        "Credibility Score: high\nReason: because",
			wantScore:  nil,
			wantReason: ReasonUnparseable,
		},
		{
			name:       "missing reason label",
			raw:        "Credibility Score: 55",
			wantScore:  nil,
			wantReason: ReasonUnparseable,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			score, reason := ParseModelResponse(c.raw)
			if (score == nil) != (c.wantScore == nil) {
				t.Fatalf("score presence = %v; want %v", score != nil, c.wantScore != nil)
			}
			if score != nil && *score != *c.wantScore {
				t.Fatalf("score = %d; want %d", *score, *c.wantScore)
			}
			if reason != c.wantReason {
				t.Fatalf("reason = %q; want %q", reason, c.wantReason)
			}
		})
	}
}

func intPtr(v int) *int { return &v }
