// Package wikidata provides the Wikidata side of the reconciliation pipeline:
// city verification via instance-of/subclass-of reasoning and superclass
// hierarchy retrieval for attraction types.
package wikidata

import (
	"context"
	"fmt"

	"github.com/coolbeans/geolink/pkg/sparql"
)

// CityClass is the Wikidata entity for "city".
const CityClass = "http://www.wikidata.org/entity/Q515"

// Client wraps a SPARQL client with the Wikidata queries the pipeline needs.
type Client struct {
	sparqlClient *sparql.Client
}

// NewClient creates a Wikidata client on top of the given SPARQL client.
func NewClient(sparqlClient *sparql.Client) *Client {
	return &Client{sparqlClient: sparqlClient}
}

// IsCity asks whether entityURI is an instance of city or of any transitive
// subclass of city. The P279 closure is reflexive, so direct instances of
// Q515 qualify too.
func (client *Client) IsCity(ctx context.Context, entityURI string) (bool, error) {
	query := fmt.Sprintf(`PREFIX wdt: <http://www.wikidata.org/prop/direct/>
PREFIX wd: <http://www.wikidata.org/entity/>
ASK {
  <%s> (wdt:P31/wdt:P279*) <%s> .
}`, entityURI, CityClass)

	isCity, err := client.sparqlClient.Ask(ctx, query)
	if err != nil {
		return false, fmt.Errorf("city check for %s: %w", entityURI, err)
	}
	return isCity, nil
}
