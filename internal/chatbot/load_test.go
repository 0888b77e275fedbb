package chatbot

import (
	"errors"
	"strings"
	"testing"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

func TestLoadKnowledgeBase_KeepsFileOrder(t *testing.T) {
	t.Parallel()

	doc := `
categories:
  - key: second
    keywords: [shared]
    response: from second
  - key: first
    keywords: [shared, only]
    response: from first
fallback: nothing matched
`
	kb, err := LoadKnowledgeBase(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := kb.Resolve("SHARED word"); got != "from second" {
		t.Fatalf("expected first declared category to win, got %q", got)
	}
	if got := kb.Resolve("only"); got != "from first" {
		t.Fatalf("expected from first, got %q", got)
	}
	if got := kb.Resolve("zzz"); got != "nothing matched" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestLoadKnowledgeBase_Rejects(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unknown field": "categories: []\nfallback: x\nextra: 1\n",
		"no fallback":   "categories:\n  - key: a\n    response: b\n",
		"bad yaml":      "categories: [",
	}
	for name, doc := range tests {
		if _, err := LoadKnowledgeBase(strings.NewReader(doc)); !errors.Is(err, domain.ErrInvalidKnowledgeBase) {
			t.Fatalf("%s: expected ErrInvalidKnowledgeBase, got %v", name, err)
		}
	}
}

func TestLoadKnowledgeBaseFile_EmptyPathUsesDefault(t *testing.T) {
	t.Parallel()

	kb, err := LoadKnowledgeBaseFile("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(kb.Categories()) != len(DefaultKnowledgeBase().Categories()) {
		t.Fatalf("expected default table")
	}
}
