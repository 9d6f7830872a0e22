package conversation

import (
	"fmt"
	"strings"

	"inmobot/internal/model"
)

// RenderCard formats a suggestion as plain text
func RenderCard(s model.Suggestion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", SuggestionIntro)
	fmt.Fprintf(&b, "  %s [%s]\n", s.Title, s.Source)
	if len(s.Reasons) > 0 {
		fmt.Fprintf(&b, "  %s\n", strings.Join(s.Reasons, " · "))
	}
	fmt.Fprintf(&b, "  %s", s.URL)
	return b.String()
}
