package dbpedia

import (
	"context"
	"fmt"

	"github.com/coolbeans/geolink/pkg/sparql"
)

// AttractionCategoryPrefix anchors the category discovery query to
// tourist-attraction categories.
const AttractionCategoryPrefix = "http://dbpedia.org/resource/Category:Tourist_attractions_in_"

// Client wraps a SPARQL client with the DBpedia queries the pipeline needs.
type Client struct {
	sparqlClient *sparql.Client
}

// NewClient creates a DBpedia client on top of the given SPARQL client.
func NewClient(sparqlClient *sparql.Client) *Client {
	return &Client{sparqlClient: sparqlClient}
}

// ResolveRedirect follows at most one dbo:wikiPageRedirects hop from uri.
// The first bound target wins; when no redirect exists the input is returned
// unchanged. Redirect chains are deliberately not traversed.
func (client *Client) ResolveRedirect(ctx context.Context, uri string) (string, error) {
	query := fmt.Sprintf(`PREFIX dbo: <http://dbpedia.org/ontology/>
SELECT ?target WHERE {
  <%s> dbo:wikiPageRedirects ?target .
}`, uri)

	bindings, err := client.sparqlClient.Select(ctx, query)
	if err != nil {
		return "", fmt.Errorf("resolve redirect for %s: %w", uri, err)
	}

	if len(bindings) == 0 {
		return uri, nil
	}
	target := bindings[0].Value("target")
	if target == "" {
		// Binding present but variable unbound; treat as no redirect.
		return uri, nil
	}
	return target, nil
}

// SameAsLinks retrieves all owl:sameAs targets of uri as an order-preserving,
// duplicate-free sequence. Response order is a data-source artifact, but it
// drives first-match disambiguation downstream, so it is kept as-is.
func (client *Client) SameAsLinks(ctx context.Context, uri string) ([]string, error) {
	query := fmt.Sprintf(`PREFIX owl: <http://www.w3.org/2002/07/owl#>
SELECT DISTINCT ?same WHERE {
  <%s> owl:sameAs ?same .
}`, uri)

	bindings, err := client.sparqlClient.Select(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("same-as links for %s: %w", uri, err)
	}

	return dedupePreservingOrder(sparql.Values(bindings, "same")), nil
}

// AttractionCategories lists up to limit tourist-attraction category URIs.
func (client *Client) AttractionCategories(ctx context.Context, limit int) ([]string, error) {
	query := fmt.Sprintf(`PREFIX skos: <http://www.w3.org/2004/02/skos/core#>
SELECT DISTINCT ?category WHERE {
  ?category a skos:Concept .
  FILTER regex(str(?category), "^%s")
} LIMIT %d`, AttractionCategoryPrefix, limit)

	bindings, err := client.sparqlClient.Select(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("attraction categories: %w", err)
	}

	return sparql.Values(bindings, "category"), nil
}

// POI is a point of interest discovered under a category, paired with the
// narrower category it was filed under.
type POI struct {
	URI         string
	CategoryURI string
}

// POIsForCategory lists POIs filed under categories narrower than categoryURI
// (one skos:broader hop).
func (client *Client) POIsForCategory(ctx context.Context, categoryURI string) ([]POI, error) {
	query := fmt.Sprintf(`PREFIX dct: <http://purl.org/dc/terms/>
PREFIX skos: <http://www.w3.org/2004/02/skos/core#>
SELECT DISTINCT ?poi ?category WHERE {
  ?poi dct:subject ?category .
  ?category skos:broader <%s> .
}`, categoryURI)

	bindings, err := client.sparqlClient.Select(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pois for category %s: %w", categoryURI, err)
	}

	pois := make([]POI, 0, len(bindings))
	for _, binding := range bindings {
		poi := POI{
			URI:         binding.Value("poi"),
			CategoryURI: binding.Value("category"),
		}
		if poi.URI == "" {
			continue
		}
		pois = append(pois, poi)
	}
	return pois, nil
}

// dedupePreservingOrder removes duplicates while keeping first occurrences
// in place.
func dedupePreservingOrder(values []string) []string {
	seen := make(map[string]bool, len(values))
	deduped := make([]string, 0, len(values))
	for _, value := range values {
		if seen[value] {
			continue
		}
		seen[value] = true
		deduped = append(deduped, value)
	}
	return deduped
}
