package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coolbeans/geolink/pkg/store"
)

// ToDOT generates a Graphviz DOT representation of the knowledge graph.
// Only URI-to-URI edges are rendered; literal-valued triples would clutter
// the layout and are skipped. Node labels keep the last path segment of the
// URI, edge labels the local name of the predicate.
func ToDOT(triples *store.TripleStore) string {
	var sb strings.Builder

	sb.WriteString("digraph KnowledgeGraph {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  fontname=\"Helvetica\";\n")
	sb.WriteString("  node [fontname=\"Helvetica\" fontsize=10 shape=box style=filled fillcolor=lightblue];\n")
	sb.WriteString("  edge [fontname=\"Helvetica\" fontsize=8];\n\n")

	all := triples.All()
	sort.Slice(all, func(i, j int) bool {
		if all[i].Subject != all[j].Subject {
			return all[i].Subject < all[j].Subject
		}
		if all[i].Predicate != all[j].Predicate {
			return all[i].Predicate < all[j].Predicate
		}
		return all[i].Object < all[j].Object
	})

	declared := make(map[string]bool)
	for _, triple := range all {
		if !isResource(triple.Object) {
			continue
		}

		for _, node := range []string{triple.Subject, triple.Object} {
			if declared[node] {
				continue
			}
			declared[node] = true
			sb.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s\"];\n",
				sanitizeDOTID(node), escapeDOTLabel(localName(node))))
		}

		sb.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [label=\"%s\"];\n",
			sanitizeDOTID(triple.Subject),
			sanitizeDOTID(triple.Object),
			escapeDOTLabel(localName(triple.Predicate))))
	}

	sb.WriteString("}\n")
	return sb.String()
}

// isResource reports whether a triple object is a URI or prefixed name rather
// than a literal.
func isResource(value string) bool {
	if strings.HasPrefix(value, `"`) {
		return false
	}
	return strings.Contains(value, ":")
}

// localName extracts the display label: last path segment of a URI, or the
// part after the colon of a prefixed name.
func localName(value string) string {
	trimmed := strings.TrimSuffix(value, "/")
	if index := strings.LastIndex(trimmed, "#"); index >= 0 {
		return trimmed[index+1:]
	}
	if strings.Contains(trimmed, "://") {
		if index := strings.LastIndex(trimmed, "/"); index >= 0 {
			return trimmed[index+1:]
		}
	}
	if index := strings.Index(trimmed, ":"); index >= 0 {
		return trimmed[index+1:]
	}
	return trimmed
}

// sanitizeDOTID makes a URI safe for use as a quoted DOT node ID.
func sanitizeDOTID(value string) string {
	return strings.ReplaceAll(value, `"`, `\"`)
}

// escapeDOTLabel escapes characters that break DOT label strings.
func escapeDOTLabel(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(escaped, `"`, `\"`)
}
