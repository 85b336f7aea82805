// Package graph assembles the knowledge graph from per-location resolutions
// and type hierarchies, and exports it for downstream consumers.
package graph

import (
	"github.com/coolbeans/geolink/pkg/resolve"
	"github.com/coolbeans/geolink/pkg/store"
	"github.com/coolbeans/geolink/pkg/wikidata"
)

// Builder accumulates triples into a TripleStore. Triples use prefixed names
// for ontology terms and full URIs for external resources; the Turtle
// serializer compacts the latter on output.
type Builder struct {
	triples *store.TripleStore
}

// NewBuilder creates a Builder over a fresh triple store.
func NewBuilder() *Builder {
	return &Builder{triples: store.NewTripleStore()}
}

// Store exposes the underlying triple store for merging and serialization.
func (builder *Builder) Store() *store.TripleStore {
	return builder.triples
}

// AddPOI emits the triples describing one point of interest and its resolved
// city: the POI's class and literal descriptors, the locatedIn edge, the
// city's class and verification flag, and zero to two sameAs links depending
// on what resolution found.
func (builder *Builder) AddPOI(poiURI, typeLabel string, resolution *resolve.Resolution) error {
	cityURI := resolution.ResolvedURI

	if err := builder.triples.Add(poiURI, store.RDFType, store.TypeNodeURI(typeLabel)); err != nil {
		return err
	}
	if err := builder.triples.Add(poiURI, store.PropLocatedIn, cityURI); err != nil {
		return err
	}
	if err := builder.triples.Add(poiURI, store.PropTypeString, typeLabel); err != nil {
		return err
	}
	if err := builder.triples.Add(poiURI, store.PropLocationString, resolution.Location); err != nil {
		return err
	}

	if err := builder.triples.Add(cityURI, store.RDFType, store.ClassCity); err != nil {
		return err
	}
	if resolution.WikidataURI != "" {
		if err := builder.triples.Add(cityURI, store.OWLSameAs, resolution.WikidataURI); err != nil {
			return err
		}
	}
	if resolution.GeoNamesURI != "" {
		if err := builder.triples.Add(cityURI, store.OWLSameAs, resolution.GeoNamesURI); err != nil {
			return err
		}
	}
	return builder.triples.Add(cityURI, store.PropIsVerifiedCity, store.BooleanLiteral(resolution.IsCity))
}

// AddTypeHierarchy links a POI to its attraction-type node and threads the
// retrieved superclasses into a chain: the base type is subClassOf the first
// node, which is subClassOf the second, and so on in sequence order. Each
// superclass attaches to its predecessor, not to the base type.
func (builder *Builder) AddTypeHierarchy(poiURI, typeLabel string, chain []wikidata.TypeNode) error {
	typeNode := store.TypeNodeURI(typeLabel)

	if err := builder.triples.Add(poiURI, store.PropHasType, typeNode); err != nil {
		return err
	}
	if err := builder.triples.Add(typeNode, store.RDFType, store.ClassAttractionType); err != nil {
		return err
	}

	previous := typeNode
	for _, node := range chain {
		if node.URI == "" {
			continue
		}
		if err := builder.triples.Add(previous, store.RDFSSubClassOf, node.URI); err != nil {
			return err
		}
		if node.Label != "" {
			if err := builder.triples.Add(node.URI, store.RDFSLabel, node.Label); err != nil {
				return err
			}
		}
		previous = node.URI
	}
	return nil
}

// Merge unions another builder's triples into this one. Re-merging the same
// graph is a no-op by set semantics.
func (builder *Builder) Merge(other *Builder) int {
	return builder.triples.MergeFrom(other.triples)
}
