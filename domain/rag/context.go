package rag

import (
	"fmt"
	"strings"
)

// Section headers of the generated knowledge context. The assistant replies
// in Vietnamese, so the context is labeled in Vietnamese too.
const (
	postsHeader     = "=== THÔNG TIN TỪ BÀI VIẾT ==="
	responsesHeader = "=== CÂU TRẢ LỜI MẪU ==="
	insightsHeader  = "=== KẾT QUẢ THỬ NGHIỆM A/B ==="
)

// BuildContext renders retrieved documents into the knowledge block injected
// into the assistant's system prompt. Documents are grouped by source corpus
// in retrieval order, each annotated with its similarity percentage. An empty
// input produces an empty string.
func BuildContext(docs []ScoredDocument) string {
	if len(docs) == 0 {
		return ""
	}

	var posts, responses, insights []string
	for _, d := range docs {
		line := formatDocument(d)
		switch d.Document.Type() {
		case DocumentPost:
			posts = append(posts, line)
		case DocumentResponse:
			responses = append(responses, line)
		case DocumentInsight:
			insights = append(insights, line)
		}
	}

	var sections []string
	if len(posts) > 0 {
		sections = append(sections, postsHeader+"\n"+strings.Join(posts, "\n"))
	}
	if len(responses) > 0 {
		sections = append(sections, responsesHeader+"\n"+strings.Join(responses, "\n"))
	}
	if len(insights) > 0 {
		sections = append(sections, insightsHeader+"\n"+strings.Join(insights, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

func formatDocument(d ScoredDocument) string {
	pct := int(d.Similarity * 100)
	if title := d.Document.Title(); title != "" {
		return fmt.Sprintf("- (%d%% liên quan) %s: %s", pct, title, d.Document.Content())
	}
	return fmt.Sprintf("- (%d%% liên quan) %s", pct, d.Document.Content())
}
