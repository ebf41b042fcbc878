package themes

import (
	"context"
	"strings"
	"testing"

	"github.com/PatrickAngrezani/IA-video-generator/internal/logger"
)

func newTestExtractor(threshold float64) Extractor {
	return New("en", threshold, logger.New("error"))
}

func TestExtractEmptyScript(t *testing.T) {
	ext := newTestExtractor(0.1)

	phrases, err := ext.Extract(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(phrases) != 0 {
		t.Errorf("len(phrases) = %d, want 0", len(phrases))
	}
}

func TestExtractNoDuplicates(t *testing.T) {
	ext := newTestExtractor(0.1)

	script := "Brazil is a country. Brazil has beaches. The beaches of Brazil are famous."
	phrases, err := ext.Extract(context.Background(), script)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(phrases) == 0 {
		t.Fatal("Extract() returned no phrases")
	}

	seen := make(map[string]bool)
	for _, p := range phrases {
		key := strings.ToLower(p)
		if seen[key] {
			t.Errorf("duplicate phrase %q in result", p)
		}
		seen[key] = true
	}
}

func TestExtractFindsRepeatedSubject(t *testing.T) {
	ext := newTestExtractor(0.1)

	script := "Coffee is popular. Coffee farms grow coffee. People drink coffee daily."
	phrases, err := ext.Extract(context.Background(), script)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	found := false
	for _, p := range phrases {
		if strings.Contains(strings.ToLower(p), "coffee") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected a coffee phrase in %v", phrases)
	}
}

func TestFrequentTermsThreshold(t *testing.T) {
	// With a threshold of 1.0, only a text made of a single repeated term
	// can qualify.
	ext := New("en", 1.0, logger.New("error")).(*implExtractor)

	terms := ext.frequentTerms("cat dog bird fish")
	if len(terms) != 0 {
		t.Errorf("terms = %v, want none at threshold 1.0", terms)
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"Brazil", "brazil", "  ", "beaches", "BRAZIL"})
	want := []string{"Brazil", "beaches"}

	if len(got) != len(want) {
		t.Fatalf("dedupe() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dedupe()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
