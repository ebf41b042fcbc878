package themes

import (
	"context"
	"fmt"
	"strings"

	"github.com/bbalet/stopwords"
	"github.com/jdkato/prose/v2"
)

// Extract runs named-entity recognition, noun-phrase chunking and
// term-frequency scoring over the text and returns the deduplicated union.
func (e *implExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var phrases []string
	phrases = append(phrases, entityPhrases(doc)...)
	phrases = append(phrases, nounPhrases(doc)...)
	phrases = append(phrases, e.frequentTerms(text)...)

	result := dedupe(phrases)

	e.logger.Debug(ctx, "Extracted %d theme phrases from %d chars", len(result), len(text))
	return result, nil
}

func entityPhrases(doc *prose.Document) []string {
	var out []string
	for _, ent := range doc.Entities() {
		out = append(out, ent.Text)
	}
	return out
}

// nounPhrases collects maximal runs of adjective/noun tokens that contain
// at least one noun, the chunking the tag set supports without a full parser.
func nounPhrases(doc *prose.Document) []string {
	var out []string
	var run []string
	hasNoun := false

	flush := func() {
		if hasNoun && len(run) > 0 {
			out = append(out, strings.Join(run, " "))
		}
		run = nil
		hasNoun = false
	}

	for _, tok := range doc.Tokens() {
		switch {
		case strings.HasPrefix(tok.Tag, "NN"):
			run = append(run, tok.Text)
			hasNoun = true
		case strings.HasPrefix(tok.Tag, "JJ"):
			run = append(run, tok.Text)
		default:
			flush()
		}
	}
	flush()

	return out
}

// frequentTerms scores stop-word-cleaned tokens by relative frequency and
// keeps those at or above the relevance threshold.
func (e *implExtractor) frequentTerms(text string) []string {
	cleaned := stopwords.CleanString(text, e.language, false)
	tokens := strings.Fields(cleaned)
	if len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		if len(tok) < 2 {
			continue
		}
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}

	var out []string
	total := float64(len(tokens))
	for _, term := range order {
		if float64(counts[term])/total >= e.threshold {
			out = append(out, term)
		}
	}
	return out
}

// dedupe removes case-insensitive duplicates, keeping the first spelling.
func dedupe(phrases []string) []string {
	seen := make(map[string]bool, len(phrases))
	var out []string
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key := strings.ToLower(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
