package submit

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/schema"
)

// FormatDocuments печатает документы в порядке загрузки: заголовок с источником, затем содержимое.
func FormatDocuments(docs []schema.Document) string {
	var sb strings.Builder
	for i, doc := range docs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "--- %v", doc.Metadata["source"])
		if title, ok := doc.Metadata["title"].(string); ok && title != "" {
			fmt.Fprintf(&sb, " (%s)", title)
		}
		sb.WriteString(" ---\n")
		sb.WriteString(doc.PageContent)
	}
	return sb.String()
}
