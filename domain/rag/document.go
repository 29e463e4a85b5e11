// Package rag defines the knowledge documents, corpus sources, and retrieval
// contracts behind the reply assistant.
package rag

import (
	"context"
	"time"
)

// DocumentType identifies which corpus a knowledge document came from.
type DocumentType string

// DocumentType values.
const (
	DocumentPost     DocumentType = "post"
	DocumentResponse DocumentType = "response"
	DocumentInsight  DocumentType = "ab_test"
)

// Document is an embedded knowledge item. The embedding is defensively
// copied on construction and access.
type Document struct {
	docType    DocumentType
	id         string
	title      string
	content    string
	engagement float64
	embedding  []float64
}

// NewDocument creates a Document.
func NewDocument(docType DocumentType, id, title, content string, engagement float64, embedding []float64) Document {
	return Document{
		docType:    docType,
		id:         id,
		title:      title,
		content:    content,
		engagement: engagement,
		embedding:  copyFloats(embedding),
	}
}

// Type returns the source corpus of the document.
func (d Document) Type() DocumentType { return d.docType }

// ID returns the source record identifier.
func (d Document) ID() string { return d.id }

// Title returns the document title (may be empty for responses).
func (d Document) Title() string { return d.title }

// Content returns the document body.
func (d Document) Content() string { return d.content }

// Engagement returns the aggregate engagement signal of the source record.
func (d Document) Engagement() float64 { return d.engagement }

// Embedding returns a copy of the document's embedding vector.
func (d Document) Embedding() []float64 { return copyFloats(d.embedding) }

// ScoredDocument pairs a document with its similarity to a query.
type ScoredDocument struct {
	Document   Document
	Similarity float64
}

// Message is one turn of a chat exchange sent to the generator.
type Message struct {
	Role    string
	Content string
}

// Embedder turns texts into embedding vectors, one per input.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Generator produces a chat completion from a message history.
type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// Retriever finds the knowledge documents most relevant to a query.
// Retrieval failures degrade to an empty result rather than an error so a
// reply can always be attempted.
type Retriever interface {
	Retrieve(ctx context.Context, query string) []ScoredDocument
}

// CacheStats describes the state of the knowledge cache.
type CacheStats struct {
	Posts     int
	Responses int
	Insights  int
	BuiltAt   time.Time
	Fresh     bool
}

// Total returns the number of cached documents across all pools.
func (s CacheStats) Total() int {
	return s.Posts + s.Responses + s.Insights
}

func copyFloats(f []float64) []float64 {
	if f == nil {
		return nil
	}
	cp := make([]float64, len(f))
	copy(cp, f)
	return cp
}
