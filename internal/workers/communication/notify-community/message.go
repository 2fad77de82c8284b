// internal/workers/communication/notify-community/message.go
package notifycommunity

import (
	"fmt"
	"strings"

	"civic-relevance-workers/internal/scoring"
)

func subjectFor(c *scoring.MicroCommunity) string {
	return fmt.Sprintf("Micro-community for %s: %s", c.IssueTitle, c.Summary())
}

// bodyFor renders the plain-text summary shared by both channels.
func bodyFor(c *scoring.MicroCommunity, maxListed int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Issue: %s\n", c.IssueTitle)
	fmt.Fprintf(&b, "Threshold: %.2f\n", c.Threshold)
	fmt.Fprintf(&b, "Relevant profiles: %s\n", c.Summary())

	if c.Count == 0 {
		b.WriteString("\nNo profile reached the threshold.\n")
		return b.String()
	}

	b.WriteString("\nMembers:\n")
	for i, m := range c.Members {
		if maxListed > 0 && i == maxListed {
			fmt.Fprintf(&b, "  ... and %d more\n", c.Count-maxListed)
			break
		}
		fmt.Fprintf(&b, "  - %s (%s)\n", m.Name, m.Relevance.TotalDisplay)
	}
	return b.String()
}
