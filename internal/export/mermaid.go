package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dusk-indust/uastdash/internal/uast"
)

const maxLabelToken = 20

// GenerateMermaid produces a Mermaid graph TD diagram of a UAST. Each node
// is labelled with its internal type and token; children hang off their
// parent, with the grammar field name on the arrow when known. Nodes below
// maxDepth are collapsed into a single "..." node. Zero means no limit.
func GenerateMermaid(root *uast.Node, maxDepth int) (string, error) {
	if root == nil {
		return "", errors.New("export: mermaid: nil tree")
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	nextID := 0
	newID := func() string {
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		return id
	}

	var emit func(n *uast.Node, id string, depth int)
	emit = func(n *uast.Node, id string, depth int) {
		sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", id, nodeLabel(n)))
		if len(n.Children) == 0 {
			return
		}
		if maxDepth > 0 && depth >= maxDepth {
			more := newID()
			sb.WriteString(fmt.Sprintf("  %s[\"... %d more\"]\n", more, n.Count()-1))
			sb.WriteString(fmt.Sprintf("  %s -.-> %s\n", id, more))
			return
		}
		for _, c := range n.Children {
			if c == nil {
				continue
			}
			cid := newID()
			emit(c, cid, depth+1)
			if field := c.Properties[uast.InternalRoleKey]; field != "" {
				sb.WriteString(fmt.Sprintf("  %s -->|%s| %s\n", id, escapeLabel(field), cid))
			} else {
				sb.WriteString(fmt.Sprintf("  %s --> %s\n", id, cid))
			}
		}
	}
	emit(root, newID(), 0)

	return sb.String(), nil
}

func nodeLabel(n *uast.Node) string {
	label := escapeLabel(n.InternalType)
	if n.Token == "" {
		return label
	}
	tok := n.Token
	if r := []rune(tok); len(r) > maxLabelToken {
		tok = string(r[:maxLabelToken]) + "…"
	}
	return label + ": " + escapeLabel(tok)
}

// escapeLabel makes s safe inside a quoted Mermaid label.
func escapeLabel(s string) string {
	r := strings.NewReplacer(
		`"`, "#quot;",
		"\n", " ",
		"\r", "",
		"\t", " ",
		"|", "#124;",
	)
	return r.Replace(s)
}
