package rag

import (
	"context"
	"strings"
	"time"
)

// Post is a published page post used as knowledge material.
type Post struct {
	id          string
	title       string
	content     string
	likes       int
	comments    int
	shares      int
	publishedAt time.Time
}

// NewPost creates a Post.
func NewPost(id, title, content string, likes, comments, shares int, publishedAt time.Time) Post {
	return Post{
		id:          id,
		title:       title,
		content:     content,
		likes:       likes,
		comments:    comments,
		shares:      shares,
		publishedAt: publishedAt,
	}
}

// ID returns the platform post identifier.
func (p Post) ID() string { return p.id }

// Title returns the post title.
func (p Post) Title() string { return p.title }

// Content returns the post body.
func (p Post) Content() string { return p.content }

// Likes returns the like count.
func (p Post) Likes() int { return p.likes }

// Comments returns the comment count.
func (p Post) Comments() int { return p.comments }

// Shares returns the share count.
func (p Post) Shares() int { return p.shares }

// PublishedAt returns when the post was published.
func (p Post) PublishedAt() time.Time { return p.publishedAt }

// Text returns the embeddable text of the post: title and content joined.
func (p Post) Text() string {
	return strings.TrimSpace(p.title + " " + p.content)
}

// Engagement returns the summed engagement signal.
func (p Post) Engagement() float64 {
	return float64(p.likes + p.comments + p.shares)
}

// Response is a curated keyword-answer pair used as knowledge material.
type Response struct {
	id       int64
	keyword  string
	response string
	active   bool
}

// NewResponse creates an active Response.
func NewResponse(keyword, response string) Response {
	return Response{keyword: keyword, response: response, active: true}
}

// ReconstructResponse rebuilds a Response from persisted state.
func ReconstructResponse(id int64, keyword, response string, active bool) Response {
	return Response{id: id, keyword: keyword, response: response, active: active}
}

// ID returns the database identifier.
func (r Response) ID() int64 { return r.id }

// Keyword returns the trigger keyword.
func (r Response) Keyword() string { return r.keyword }

// Response returns the curated answer text.
func (r Response) Response() string { return r.response }

// Active reports whether the response is available for retrieval.
func (r Response) Active() bool { return r.active }

// Text returns the embeddable text: keyword and answer joined.
func (r Response) Text() string {
	return strings.TrimSpace(r.keyword + " " + r.response)
}

// Variant is one arm of an A/B experiment.
type Variant struct {
	Name       string  `json:"name"`
	Content    string  `json:"content"`
	Engagement int     `json:"engagement"`
	Likes      int     `json:"likes"`
	Comments   int     `json:"comments"`
	Shares     int     `json:"shares"`
	CTR        float64 `json:"ctr"`
}

// Aggregate returns the variant's combined performance signal. Click-through
// rate is scaled so a percentage point competes with raw counts.
func (v Variant) Aggregate() float64 {
	return float64(v.Engagement+v.Likes+v.Comments+v.Shares) + v.CTR*100
}

// Experiment is a completed A/B test whose winning variant becomes
// knowledge material.
type Experiment struct {
	id       int64
	name     string
	status   string
	variants []Variant
}

// NewExperiment creates an Experiment.
func NewExperiment(name, status string, variants []Variant) Experiment {
	return Experiment{name: name, status: status, variants: copyVariants(variants)}
}

// ReconstructExperiment rebuilds an Experiment from persisted state.
func ReconstructExperiment(id int64, name, status string, variants []Variant) Experiment {
	return Experiment{id: id, name: name, status: status, variants: copyVariants(variants)}
}

// ID returns the database identifier.
func (e Experiment) ID() int64 { return e.id }

// Name returns the experiment name.
func (e Experiment) Name() string { return e.name }

// Status returns the experiment status.
func (e Experiment) Status() string { return e.status }

// Variants returns a copy of the experiment's variants.
func (e Experiment) Variants() []Variant { return copyVariants(e.variants) }

// BestVariant returns the variant with the highest aggregate performance.
// The second return is false when the experiment has no variants.
func (e Experiment) BestVariant() (Variant, bool) {
	if len(e.variants) == 0 {
		return Variant{}, false
	}
	best := e.variants[0]
	for _, v := range e.variants[1:] {
		if v.Aggregate() > best.Aggregate() {
			best = v
		}
	}
	return best, true
}

// PostStore reads page posts for the knowledge cache.
type PostStore interface {
	// PublishedSince returns posts published after the given time,
	// newest first, capped at limit.
	PublishedSince(ctx context.Context, since time.Time, limit int) ([]Post, error)
}

// ResponseStore reads curated responses for the knowledge cache.
type ResponseStore interface {
	Active(ctx context.Context) ([]Response, error)
}

// ExperimentStore reads completed experiments for the knowledge cache.
type ExperimentStore interface {
	Completed(ctx context.Context, limit int) ([]Experiment, error)
}

func copyVariants(v []Variant) []Variant {
	if v == nil {
		return nil
	}
	cp := make([]Variant, len(v))
	copy(cp, v)
	return cp
}
