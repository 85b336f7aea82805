// Package dbpedia provides canonical DBpedia resource URIs and the DBpedia
// side of the reconciliation pipeline: redirect resolution, owl:sameAs
// aggregation, and tourist-attraction category discovery.
package dbpedia

import (
	"errors"
	"strings"
)

// ResourceNamespace is the DBpedia resource namespace canonical URIs live in.
const ResourceNamespace = "http://dbpedia.org/resource/"

// ErrInvalidLocation reports an empty location string after trimming.
var ErrInvalidLocation = errors.New("location string is empty")

// ResourceURI builds the canonical DBpedia resource URI for a free-text
// location: trim whitespace, map spaces to underscores, prepend the resource
// namespace. Pure and idempotent over its own output domain.
func ResourceURI(location string) (string, error) {
	cleaned := strings.TrimSpace(location)
	if cleaned == "" {
		return "", ErrInvalidLocation
	}
	return ResourceNamespace + strings.ReplaceAll(cleaned, " ", "_"), nil
}
