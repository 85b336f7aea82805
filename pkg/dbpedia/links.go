package dbpedia

import "strings"

// SourceKind classifies an external link by the linked-data source its
// authority belongs to.
type SourceKind string

const (
	// SourceWikidata marks links into the Wikidata entity namespace.
	SourceWikidata SourceKind = "wikidata"

	// SourceGeoNames marks links into the GeoNames namespace.
	SourceGeoNames SourceKind = "geonames"

	// SourceOther marks links to any other source. They take no further part
	// in disambiguation but stay available to callers.
	SourceOther SourceKind = "other"
)

// Authority substrings used for classification.
const (
	wikidataAuthority = "wikidata.org/entity"
	geonamesAuthority = "geonames.org"
)

// Link is an owl:sameAs target classified by source.
type Link struct {
	URI  string
	Kind SourceKind
}

// ClassifyLink determines the source kind of a sameAs target by substring
// matching on its authority.
func ClassifyLink(uri string) SourceKind {
	switch {
	case strings.Contains(uri, wikidataAuthority):
		return SourceWikidata
	case strings.Contains(uri, geonamesAuthority):
		return SourceGeoNames
	default:
		return SourceOther
	}
}

// Partition groups sameAs targets by source kind, preserving input order
// within each group. Every input URI lands in exactly one group.
type Partition struct {
	Wikidata []string
	GeoNames []string
	Other    []string
}

// PartitionLinks classifies each URI into exactly one partition.
func PartitionLinks(uris []string) Partition {
	var partition Partition
	for _, uri := range uris {
		switch ClassifyLink(uri) {
		case SourceWikidata:
			partition.Wikidata = append(partition.Wikidata, uri)
		case SourceGeoNames:
			partition.GeoNames = append(partition.GeoNames, uri)
		default:
			partition.Other = append(partition.Other, uri)
		}
	}
	return partition
}
