package diagram

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mehinger01/garage-layout-planner/pkg/scene"
)

// Options configures scene diagram rendering.
type Options struct {
	// Detailed includes shapes, sizes, and poses in node labels.
	// When false, only the node name is shown.
	Detailed bool

	// Primitives includes leaf primitives. When false the diagram stops
	// at composite roots, which keeps large scenes readable.
	Primitives bool
}

// ToDOT converts a scene tree to Graphviz DOT format. The resulting DOT
// string can be rendered with [RenderSVG].
//
// Composite roots are filled with their zone's display color; invisible
// subtrees render dashed.
func ToDOT(sc *scene.Scene, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph scene {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	writeNode(&buf, sc, sc.Root, opts)
	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, sc *scene.Scene, n *scene.Node, opts Options) {
	if !opts.Primitives && n.Shape != scene.ShapeGroup {
		return
	}

	fmt.Fprintf(buf, "  %q [%s];\n", n.ID, strings.Join(attrs(sc, n, opts), ", "))
	for _, c := range n.Children() {
		if !opts.Primitives && c.Shape != scene.ShapeGroup {
			continue
		}
		fmt.Fprintf(buf, "  %q -> %q;\n", n.ID, c.ID)
		writeNode(buf, sc, c, opts)
	}
}

func attrs(sc *scene.Scene, n *scene.Node, opts Options) []string {
	out := []string{fmt.Sprintf("label=%q", label(n, opts.Detailed))}
	if zone := sc.ZoneFor(n); zone != nil && sc.CompositeFor(n) != nil && sc.CompositeFor(n).Node == n {
		out = append(out, fmt.Sprintf("fillcolor=%q", "#"+strings.TrimPrefix(zone.Type.Info().Color, "0x")))
		out = append(out, "fontcolor=white")
	}
	if !n.Visible {
		out = append(out, "style=\"rounded,filled,dashed\"")
	}
	return out
}

func label(n *scene.Node, detailed bool) string {
	name := n.Name
	if name == "" {
		name = n.Shape.String()
	}
	if !detailed {
		return name
	}
	parts := []string{fmt.Sprintf("shape: %s", n.Shape)}
	if n.Shape != scene.ShapeGroup && n.Shape != scene.ShapeLine {
		parts = append(parts, fmt.Sprintf("size: %.2f x %.2f x %.2f", n.Size.X(), n.Size.Y(), n.Size.Z()))
	}
	parts = append(parts, fmt.Sprintf("pos: %.2f, %.2f, %.2f", n.Pos.X(), n.Pos.Y(), n.Pos.Z()))
	if n.Yaw != 0 {
		parts = append(parts, fmt.Sprintf("yaw: %.2f", n.Yaw))
	}
	return name + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
