package chatbot

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

type knowledgeFile struct {
	Categories []struct {
		Key      string   `yaml:"key"`
		Keywords []string `yaml:"keywords"`
		Response string   `yaml:"response"`
	} `yaml:"categories"`
	Fallback string `yaml:"fallback"`
}

// LoadKnowledgeBase parses a YAML knowledge base. Categories are matched in
// the order they appear in the document:
//
//	categories:
//	  - key: hours
//	    keywords: [hours, open]
//	    response: We're open daily from 10:00 AM.
//	fallback: I'm here to help!
func LoadKnowledgeBase(r io.Reader) (*KnowledgeBase, error) {
	var doc knowledgeFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", domain.ErrInvalidKnowledgeBase, err)
	}

	categories := make([]Category, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		categories = append(categories, Category{Key: c.Key, Keywords: c.Keywords, Response: c.Response})
	}
	return NewKnowledgeBase(categories, doc.Fallback)
}

// LoadKnowledgeBaseFile loads path, or returns the built-in table when path is empty.
func LoadKnowledgeBaseFile(path string) (*KnowledgeBase, error) {
	if path == "" {
		return DefaultKnowledgeBase(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open knowledge base: %w", err)
	}
	defer f.Close()
	return LoadKnowledgeBase(f)
}
