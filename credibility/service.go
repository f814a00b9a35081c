package credibility

import (
	"context"
	"fmt"
	"strings"

	"credcheck/config"
	"credcheck/extract"
	"credcheck/llm"
	"credcheck/retrieval"
	"credcheck/types"
)

// promptTemplate demands the exact output shape the parser understands.
const promptTemplate = `You are a misinformation detection expert.

Analyze the following online content for credibility:
"""%s"""

Step 1: Identify if the text contains misleading, exaggerated, or false claims.
Step 2: Detect patterns typical of misinformation.
Step 3: Output a credibility score from 0 (false) to 100 (credible) and a reason.

Respond in this format only:
Credibility Score: <score>
Reason: <brief reason>`

const (
	// groundedTemperature keeps evidence-grounded judgments deterministic.
	groundedTemperature = 0.0
	// directTemperature applies when no evidence qualified and the raw
	// article text is scored instead.
	directTemperature = 0.7
)

// Service composes extraction, retrieval, model invocation, and parsing into
// one credibility check. The retrieval strategy and model backend are
// injected, so the direct, retrieval-augmented, and local-model variants all
// share this orchestration.
type Service struct {
	extractor extract.Extractor
	retriever retrieval.Retriever
	model     llm.Client
}

// NewService creates a credibility service from its collaborators.
func NewService(extractor extract.Extractor, retriever retrieval.Retriever, model llm.Client) *Service {
	return &Service{
		extractor: extractor,
		retriever: retriever,
		model:     model,
	}
}

// Check extracts the article at url, gathers evidence, asks the model for a
// score, and assembles the result. Extraction failure short-circuits before
// any store or model call. A model response that cannot be parsed is still a
// successful check: the score is nil and the reason explains why.
func (s *Service) Check(ctx context.Context, url string, topN int) (*types.CredibilityResult, error) {
	article, err := s.extractor.Extract(url)
	if err != nil {
		return nil, err
	}

	docs, err := s.retriever.Retrieve(ctx, article, topN)
	if err != nil {
		return nil, err
	}

	// Ground the judgment in retrieved evidence when any qualified;
	// otherwise fall back to scoring the raw article so the service stays
	// available with an empty corpus.
	subject := article
	temperature := directTemperature
	snippets := ""
	if len(docs) > 0 {
		snippets = strings.Join(docs, " ")
		subject = snippets
		temperature = groundedTemperature
	}

	output, err := s.model.Complete(ctx, fmt.Sprintf(promptTemplate, subject), temperature)
	if err != nil {
		return nil, err
	}

	score, reason := ParseModelResponse(output)

	if docs == nil {
		docs = []string{}
	}

	return &types.CredibilityResult{
		Article:   preview(article),
		Snippets:  preview(snippets),
		Score:     score,
		Reason:    reason,
		URL:       url,
		Documents: docs,
		Links:     collectLinks(docs),
	}, nil
}

// collectLinks gathers reference links from the retained documents in
// retention order, dropping duplicates but keeping first-seen order.
func collectLinks(docs []string) []string {
	var links []string
	seen := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		link := retrieval.ReferenceLink(doc)
		if link == "" {
			continue
		}
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	return links
}

// preview truncates text for the serialized response. Scoring always sees the
// full text.
func preview(text string) string {
	if len(text) > config.PreviewLimit {
		return text[:config.PreviewLimit]
	}
	return text
}
