package saints

import (
	"iter"
	"strings"
)

// Entry is what one day heading yields before its image is resolved.
type Entry struct {
	Name        *string
	Description string
}

// Extract consumes classified nodes until a sentinel or the end of the page.
// The last name seen wins; asides and blanks are dropped; text is concatenated verbatim.
func Extract(nodes iter.Seq[Node]) Entry {
	var (
		entry       Entry
		description strings.Builder
	)

walk:
	for node := range nodes {
		switch node.Kind {
		case KindSentinel:
			break walk
		case KindName:
			name := node.Text
			entry.Name = &name
		case KindText:
			description.WriteString(node.Text)
		case KindAside, KindBlank:
		}
	}

	entry.Description = description.String()
	return entry
}
