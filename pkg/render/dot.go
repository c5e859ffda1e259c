// Package render converts validated graphs and layout results into
// viewable artifacts: Graphviz DOT, SVG previews, and Mermaid source.
//
// Rendering is a convenience surface for humans inspecting a diagram. The
// canonical output of the pipeline is the shape batch; nothing downstream
// depends on this package.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/davidblanc347/parodesign/pkg/graph"
	"github.com/davidblanc347/parodesign/pkg/layout"
	"github.com/davidblanc347/parodesign/pkg/shape"
)

// ToDOT converts a layout result to Graphviz DOT. Graphviz performs its own
// placement; node ranks from the layout are preserved via rankdir but exact
// coordinates are not, which is fine for a quick preview.
func ToDOT(res layout.Result, dir layout.Direction) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir(dir))
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=\"filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range res.Nodes {
		kind := shape.KindFor(n.Type)
		fmt.Fprintf(&buf, "  %q [label=%q, shape=%s, fillcolor=%q];\n",
			n.ID, n.Label, dotShape(kind), shape.FillFor(n.Type))
	}

	buf.WriteString("\n")
	for _, e := range res.Edges {
		if e.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.Source, e.Target, e.Label)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func rankdir(dir layout.Direction) string {
	switch dir {
	case layout.DirectionBottomTop:
		return "BT"
	case layout.DirectionLeftRight:
		return "LR"
	case layout.DirectionRightLeft:
		return "RL"
	default:
		return "TB"
	}
}

func dotShape(k shape.Kind) string {
	switch k {
	case shape.KindDiamond:
		return "diamond"
	case shape.KindEllipse:
		return "ellipse"
	case shape.KindTrapezoid:
		return "trapezium"
	default:
		return "box"
	}
}

// ToMermaid converts a validated graph to Mermaid flowchart source for
// embedding in markdown documents.
func ToMermaid(m graph.Model, dir layout.Direction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "graph %s\n", rankdir(dir))

	for i := range m.Nodes {
		fmt.Fprintf(&b, "    %s\n", mermaidNodeDef(m.Nodes[i]))
	}
	for _, e := range m.Edges {
		label := ""
		if e.Label != "" {
			label = fmt.Sprintf("|%s|", e.Label)
		}
		fmt.Fprintf(&b, "    %s -->%s %s\n", mermaidSafeID(e.Source), label, mermaidSafeID(e.Target))
	}

	return b.String()
}

// mermaidNodeDef returns a Mermaid node definition with the shape implied
// by the node type.
func mermaidNodeDef(n graph.Node) string {
	id := mermaidSafeID(n.ID)
	label := n.Label

	switch shape.KindFor(n.Type) {
	case shape.KindDiamond:
		return fmt.Sprintf("%s{%q}", id, label)
	case shape.KindEllipse:
		return fmt.Sprintf("%s([%q])", id, label)
	case shape.KindTrapezoid:
		return fmt.Sprintf("%s[/%q/]", id, label)
	default:
		return fmt.Sprintf("%s[%q]", id, label)
	}
}

// mermaidSafeID converts a node ID to a Mermaid-safe identifier.
// Replaces dots, dashes, and spaces with underscores.
func mermaidSafeID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", " ", "_")
	return r.Replace(id)
}
