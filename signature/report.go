package signature

import (
	"fmt"
	"strings"

	"github.com/grailbio/fqid/technology"
)

// Report renders the match outcome for humans. Ambiguous results list
// every candidate; the report never silently picks one.
func (m MatchResult) Report(sig Signature) string {
	var b strings.Builder
	fmt.Fprintf(&b, "signature: %s\n", sig)
	switch m.Status {
	case Unique:
		name := m.Candidates[0]
		if spec, ok := technology.Lookup(name); ok {
			fmt.Fprintf(&b, "technology: %s (%s)\n", name, spec.Description)
		} else {
			fmt.Fprintf(&b, "technology: %s\n", name)
		}
	case Ambiguous:
		fmt.Fprintf(&b, "ambiguous: %d technologies match (most specific first):\n", len(m.Candidates))
		for _, name := range m.Candidates {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	case NoMatch:
		fmt.Fprintf(&b, "no known technology matches\n")
	}
	return b.String()
}
