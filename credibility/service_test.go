package credibility

import (
	"context"
	"errors"
	"strings"
	"testing"

	"credcheck/extract"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(url string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeRetriever struct {
	docs    []string
	err     error
	called  bool
	gotTopN int
}

func (f *fakeRetriever) Retrieve(ctx context.Context, queryText string, topN int) ([]string, error) {
	f.called = true
	f.gotTopN = topN
	return f.docs, f.err
}

type fakeModel struct {
	response string
	err      error
	called   bool
	gotTemp  float64
	gotText  string
}

func (f *fakeModel) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	f.called = true
	f.gotTemp = temperature
	f.gotText = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeModel) ModelName() string { return "fake-test-model" }

func TestCheckGroundedInEvidence(t *testing.T) {
	docs := []string{
		`{"title":"Related story","link":"https://example.com/one"}`,
		`{"title":"Another story","link":"https://example.com/two"}`,
	}
	model := &fakeModel{response: "Credibility Score: 75\nReason: Consistent with archived reports."}
	retriever := &fakeRetriever{docs: docs}
	svc := NewService(&fakeExtractor{text: "article body"}, retriever, model)

	result, err := svc.Check(context.Background(), "https://news.example.com/a", 3)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}

	if result.Score == nil || *result.Score != 75 {
		t.Fatalf("expected score 75, got %v", result.Score)
	}
	if result.Reason != "Consistent with archived reports." {
		t.Fatalf("unexpected reason: %q", result.Reason)
	}
	if model.gotTemp != 0.0 {
		t.Fatalf("expected temperature 0.0 for grounded check, got %v", model.gotTemp)
	}
	if !strings.Contains(model.gotText, docs[0]) || !strings.Contains(model.gotText, docs[1]) {
		t.Fatalf("prompt should contain the evidence snippets, got: %q", model.gotText)
	}
	if retriever.gotTopN != 3 {
		t.Fatalf("expected topN 3, got %d", retriever.gotTopN)
	}
	if len(result.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(result.Documents))
	}
	if len(result.Links) != 2 || result.Links[0] != "https://example.com/one" {
		t.Fatalf("unexpected links: %v", result.Links)
	}
	if result.URL != "https://news.example.com/a" {
		t.Fatalf("unexpected url: %q", result.URL)
	}
}

func TestCheckFallsBackToArticleWhenNoEvidence(t *testing.T) {
	model := &fakeModel{response: "Credibility Score: 20\nReason: Sensational claims."}
	svc := NewService(&fakeExtractor{text: "article body"}, &fakeRetriever{}, model)

	result, err := svc.Check(context.Background(), "https://news.example.com/b", 3)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}

	if model.gotTemp != 0.7 {
		t.Fatalf("expected temperature 0.7 for direct check, got %v", model.gotTemp)
	}
	if !strings.Contains(model.gotText, "article body") {
		t.Fatalf("prompt should contain the article text, got: %q", model.gotText)
	}
	if result.Snippets != "" {
		t.Fatalf("expected empty snippets, got %q", result.Snippets)
	}
	if result.Documents == nil || len(result.Documents) != 0 {
		t.Fatalf("expected empty (non-nil) documents, got %#v", result.Documents)
	}
}

func TestCheckParseFailureIsStillSuccess(t *testing.T) {
	model := &fakeModel{response: "I cannot comply with that format."}
	svc := NewService(&fakeExtractor{text: "article body"}, &fakeRetriever{}, model)

	result, err := svc.Check(context.Background(), "https://news.example.com/c", 3)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if result.Score != nil {
		t.Fatalf("expected nil score, got %d", *result.Score)
	}
	if result.Reason != ReasonUnparseable {
		t.Fatalf("unexpected reason: %q", result.Reason)
	}
}

func TestCheckExtractionFailureShortCircuits(t *testing.T) {
	retriever := &fakeRetriever{}
	model := &fakeModel{response: "Credibility Score: 50\nReason: n/a"}
	svc := NewService(&fakeExtractor{err: extract.ErrExtractionFailed}, retriever, model)

	_, err := svc.Check(context.Background(), "https://news.example.com/d", 3)
	if !errors.Is(err, extract.ErrExtractionFailed) {
		t.Fatalf("expected extraction error, got %v", err)
	}
	if retriever.called {
		t.Fatal("retriever should not be called when extraction fails")
	}
	if model.called {
		t.Fatal("model should not be called when extraction fails")
	}
}

func TestCheckRetrieverErrorPropagates(t *testing.T) {
	retErr := errors.New("store unavailable")
	model := &fakeModel{}
	svc := NewService(&fakeExtractor{text: "article body"}, &fakeRetriever{err: retErr}, model)

	_, err := svc.Check(context.Background(), "https://news.example.com/e", 3)
	if !errors.Is(err, retErr) {
		t.Fatalf("expected retriever error, got %v", err)
	}
	if model.called {
		t.Fatal("model should not be called when retrieval fails")
	}
}

func TestCheckTruncatesPreviews(t *testing.T) {
	longText := strings.Repeat("a", 2500)
	model := &fakeModel{response: "Credibility Score: 60\nReason: ok"}
	svc := NewService(&fakeExtractor{text: longText}, &fakeRetriever{}, model)

	result, err := svc.Check(context.Background(), "https://news.example.com/f", 3)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(result.Article) != 1000 {
		t.Fatalf("expected 1000-char article preview, got %d", len(result.Article))
	}
	// The model must see the full text, not the preview.
	if !strings.Contains(model.gotText, longText) {
		t.Fatal("prompt should contain the full article text")
	}
}

func TestCollectLinksDeduplicates(t *testing.T) {
	docs := []string{
		`{"link":"https://example.com/same"}`,
		`{"link":"https://example.com/same"}`,
		`{"title":"no link here"}`,
		`{"link":"https://example.com/other"}`,
	}
	links := collectLinks(docs)
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %v", links)
	}
	if links[0] != "https://example.com/same" || links[1] != "https://example.com/other" {
		t.Fatalf("unexpected link order: %v", links)
	}
}
