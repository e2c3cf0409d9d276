package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/comalice/statechartx/internal/primitives"
)

// DefaultVisualizer is the stdlib-only Visualizer: Graphviz DOT for
// structure diagrams plus a JSON dump of the chart for tooling that wants
// the raw shape instead.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for sc, highlighting every state
// named in active. Compound and Orthogonal states render as clusters;
// active clusters are filled orange, and inactive Orthogonal clusters get a
// dashed border to set them apart from ordinary nesting. Final states render as a double circle, History states as a
// small "H"/"H*" node.
func (v *DefaultVisualizer) ExportDOT(sc *primitives.Statechart, active []string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Statechart {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")
	buf.WriteString("  edge [fontsize=9];\n")

	activeSet := make(map[string]bool, len(active))
	for _, name := range active {
		activeSet[name] = true
	}

	renderState(&buf, sc.Root, activeSet)

	for _, t := range sc.Transitions() {
		label := t.Event
		if label == "" {
			label = "ε"
		}
		target := t.Target
		if target == "" {
			target = t.Source
		}
		fmt.Fprintf(&buf, "  \"%s\" -> \"%s\" [label=\"%s\"];\n", t.Source, target, label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes sc's state/transition shape to JSON. Statechart
// itself doesn't carry json tags (it is a derived index, not a wire
// format), so ExportJSON walks the tree into a plain description instead of
// marshaling the Statechart directly.
func (v *DefaultVisualizer) ExportJSON(sc *primitives.Statechart) ([]byte, error) {
	return json.MarshalIndent(describeState(sc.Root), "", "  ")
}

type stateDescription struct {
	Name        string              `json:"name"`
	Kind        primitives.Kind     `json:"kind"`
	Initial     string              `json:"initial,omitempty"`
	Children    []stateDescription  `json:"children,omitempty"`
	Transitions []transitionSummary `json:"transitions,omitempty"`
}

type transitionSummary struct {
	Target string `json:"target"`
	Event  string `json:"event,omitempty"`
}

func describeState(s *primitives.State) stateDescription {
	d := stateDescription{Name: s.Name, Kind: s.Kind, Initial: s.Initial}
	for _, c := range s.Children {
		d.Children = append(d.Children, describeState(c))
	}
	for _, t := range s.Transitions {
		d.Transitions = append(d.Transitions, transitionSummary{Target: t.Target, Event: t.Event})
	}
	return d
}

func renderState(buf *bytes.Buffer, s *primitives.State, active map[string]bool) {
	switch s.Kind {
	case primitives.FinalKind:
		style := ""
		if active[s.Name] {
			style = " style=filled fillcolor=lightgreen"
		}
		fmt.Fprintf(buf, "  \"%s\" [label=\"%s\" shape=doublecircle%s];\n", s.Name, s.Name, style)
		return
	case primitives.ShallowHistoryKind, primitives.DeepHistoryKind:
		label := "H"
		if s.Kind == primitives.DeepHistoryKind {
			label = "H*"
		}
		fmt.Fprintf(buf, "  \"%s\" [label=\"%s\" shape=circle];\n", s.Name, label)
		return
	}

	if len(s.Children) == 0 {
		style := ""
		if active[s.Name] {
			style = " style=filled fillcolor=lightgreen"
		}
		fmt.Fprintf(buf, "  \"%s\" [label=\"%s\"%s];\n", s.Name, s.Name, style)
		return
	}

	clusterID := fmt.Sprintf("cluster_%s", s.Name)
	fmt.Fprintf(buf, "  subgraph %s {\n", clusterID)
	parentStyle := ""
	if active[s.Name] {
		parentStyle = " style=filled fillcolor=orange"
	} else if s.Kind == primitives.OrthogonalKind {
		parentStyle = " style=dashed"
	}
	fmt.Fprintf(buf, "    label=\"%s (%s)\"%s;\n", s.Name, s.Kind, parentStyle)

	for _, child := range s.Children {
		renderState(buf, child, active)
	}

	buf.WriteString("  }\n")
}
