// Package chatbot answers visitor questions from a fixed keyword table.
package chatbot

import (
	"fmt"
	"strings"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

// Category pairs trigger keywords with a canned response.
type Category struct {
	Key      string
	Keywords []string
	Response string
}

// KnowledgeBase is an ordered, immutable list of categories plus the
// response used when nothing matches.
type KnowledgeBase struct {
	categories []Category
	fallback   string
}

// NewKnowledgeBase copies categories in the given order. Keys must be
// non-empty and unique, and the fallback must be set.
func NewKnowledgeBase(categories []Category, fallback string) (*KnowledgeBase, error) {
	if strings.TrimSpace(fallback) == "" {
		return nil, fmt.Errorf("%w: fallback response required", domain.ErrInvalidKnowledgeBase)
	}
	seen := make(map[string]struct{}, len(categories))
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c.Key == "" {
			return nil, fmt.Errorf("%w: category key required", domain.ErrInvalidKnowledgeBase)
		}
		if _, dup := seen[c.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", domain.ErrInvalidKnowledgeBase, c.Key)
		}
		seen[c.Key] = struct{}{}

		keywords := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			kw = strings.ToLower(kw)
			if kw == "" {
				continue
			}
			keywords = append(keywords, kw)
		}
		out = append(out, Category{Key: c.Key, Keywords: keywords, Response: c.Response})
	}
	return &KnowledgeBase{categories: out, fallback: fallback}, nil
}

// Resolve returns the response of the first category, in declaration
// order, that has any keyword contained in the lower-cased query. Queries
// matching nothing (including the empty string) get the fallback.
func (kb *KnowledgeBase) Resolve(query string) string {
	if c, ok := kb.match(query); ok {
		return c.Response
	}
	return kb.fallback
}

// Match reports which category Resolve would answer from.
func (kb *KnowledgeBase) Match(query string) (string, bool) {
	c, ok := kb.match(query)
	if !ok {
		return "", false
	}
	return c.Key, true
}

func (kb *KnowledgeBase) match(query string) (Category, bool) {
	q := strings.ToLower(query)
	for _, c := range kb.categories {
		for _, kw := range c.Keywords {
			if strings.Contains(q, kw) {
				return c, true
			}
		}
	}
	return Category{}, false
}

// Categories returns a copy of the table in match order.
func (kb *KnowledgeBase) Categories() []Category {
	out := make([]Category, len(kb.categories))
	for i, c := range kb.categories {
		c.Keywords = append([]string(nil), c.Keywords...)
		out[i] = c
	}
	return out
}

// Fallback returns the no-match response.
func (kb *KnowledgeBase) Fallback() string {
	return kb.fallback
}
