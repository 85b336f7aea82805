package wikidata

import (
	"context"
	"fmt"
	"strings"
)

// Hierarchy depth bounds. Depths outside this range are clamped; each extra
// level adds a P279 hop to the union in the query.
const (
	MinHierarchyDepth     = 1
	MaxHierarchyDepth     = 3
	DefaultHierarchyDepth = 3
)

// TypeNode is a superclass entity paired with its English label.
type TypeNode struct {
	URI   string
	Label string
}

// Superclasses retrieves the superclasses of entityURI up to depth P279 hops,
// labelled in English via the label service. Results keep endpoint response
// order, duplicates included: the same entity reachable at two depths appears
// twice, and downstream chain assembly depends on the sequence as returned.
func (client *Client) Superclasses(ctx context.Context, entityURI string, depth int) ([]TypeNode, error) {
	query := fmt.Sprintf(`PREFIX wdt: <http://www.wikidata.org/prop/direct/>
PREFIX wikibase: <http://wikiba.se/ontology#>
PREFIX bd: <http://www.bigdata.com/rdf#>
SELECT DISTINCT ?super ?superLabel WHERE {
  <%s> (%s) ?super .
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
}`, entityURI, pathUnion(depth))

	bindings, err := client.sparqlClient.Select(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("superclasses for %s: %w", entityURI, err)
	}

	nodes := make([]TypeNode, 0, len(bindings))
	for _, binding := range bindings {
		node := TypeNode{
			URI:   binding.Value("super"),
			Label: binding.Value("superLabel"),
		}
		if node.URI == "" {
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// pathUnion builds the alternation "wdt:P279 | wdt:P279/wdt:P279 | ..." for
// the requested depth.
func pathUnion(depth int) string {
	if depth < MinHierarchyDepth {
		depth = MinHierarchyDepth
	}
	if depth > MaxHierarchyDepth {
		depth = MaxHierarchyDepth
	}

	paths := make([]string, 0, depth)
	for level := 1; level <= depth; level++ {
		segments := make([]string, level)
		for i := range segments {
			segments[i] = "wdt:P279"
		}
		paths = append(paths, strings.Join(segments, "/"))
	}
	return strings.Join(paths, " | ")
}
