package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dusk-indust/uastdash/internal/uast"
)

// UASTExport is the top-level JSON export structure.
type UASTExport struct {
	Language   string      `json:"language"`
	ExportedAt string      `json:"exportedAt"`
	NodeCount  int         `json:"nodeCount"`
	MaxDepth   int         `json:"maxDepth"`
	Roles      []RoleCount `json:"roles"`
	Types      []TypeCount `json:"types"`
	UAST       *uast.Node  `json:"uast,omitempty"`
}

// RoleCount is the number of nodes carrying a role.
type RoleCount struct {
	Role  uast.Role `json:"role"`
	Count int       `json:"count"`
}

// TypeCount is the number of nodes of one internal type.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// ExportUAST summarizes a tree. Role and type counts are sorted by count,
// highest first, then by name. With includeTree the tree itself is
// embedded.
func ExportUAST(root *uast.Node, language string, includeTree bool) *UASTExport {
	e := &UASTExport{
		Language:   language,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if root == nil {
		return e
	}

	roles := make(map[uast.Role]int)
	types := make(map[string]int)
	var walk func(n *uast.Node, depth int)
	walk = func(n *uast.Node, depth int) {
		if n == nil {
			return
		}
		e.NodeCount++
		if depth > e.MaxDepth {
			e.MaxDepth = depth
		}
		types[n.InternalType]++
		for _, r := range n.Roles {
			roles[r]++
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)

	for r, n := range roles {
		e.Roles = append(e.Roles, RoleCount{Role: r, Count: n})
	}
	sort.Slice(e.Roles, func(i, j int) bool {
		if e.Roles[i].Count != e.Roles[j].Count {
			return e.Roles[i].Count > e.Roles[j].Count
		}
		return e.Roles[i].Role < e.Roles[j].Role
	})
	for t, n := range types {
		e.Types = append(e.Types, TypeCount{Type: t, Count: n})
	}
	sort.Slice(e.Types, func(i, j int) bool {
		if e.Types[i].Count != e.Types[j].Count {
			return e.Types[i].Count > e.Types[j].Count
		}
		return e.Types[i].Type < e.Types[j].Type
	})

	if includeTree {
		e.UAST = root
	}
	return e
}

// WriteJSON writes e as indented JSON.
func WriteJSON(w io.Writer, e *UASTExport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("export: json: %w", err)
	}
	return nil
}
