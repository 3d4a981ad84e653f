package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/dfacheck/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// GenerateMermaid produces a Mermaid flowchart for an automaton.
// It applies semantic styling:
// - Accepting: (((Double circle)))
// - Other states: ((Circle))
// The start state gets an incoming edge from an invisible entry point, and
// parallel edges between two states are merged into one comma-separated label.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(a *domain.Automaton, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	sb.WriteString("    _start_(( )) --> " + stateID(a.Label(a.Start())) + "\n")

	for q := 0; q < a.NumStates(); q++ {
		id := domain.StateID(q)
		label := a.Label(id)
		opener, closer := "((", "))"
		if a.IsAccepting(id) {
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", stateID(label), opener, escape(label), closer))
	}

	type pair struct{ from, to domain.StateID }
	labels := make(map[pair][]string)
	var order []pair
	for _, e := range a.Edges() {
		p := pair{e.From, e.To}
		if _, ok := labels[p]; !ok {
			order = append(order, p)
		}
		labels[p] = append(labels[p], e.Symbol.String())
	}
	for _, p := range order {
		syms := labels[p]
		sort.Strings(syms)
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
			stateID(a.Label(p.from)), strings.Join(syms, ","), stateID(a.Label(p.to))))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, l := range overlay.VisitedStates {
			id := stateID(l)
			if !visitedSet[id] {
				visitedSet[id] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", id))
			}
		}

		if overlay.CurrentState != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", stateID(overlay.CurrentState)))
		}
	}

	return sb.String()
}

// stateID prefixes labels so numeric or keyword-like labels stay valid
// Mermaid identifiers.
func stateID(label string) string {
	var sb strings.Builder
	sb.WriteString("s_")
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}
