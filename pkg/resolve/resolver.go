// Package resolve runs the per-location reconciliation pipeline: canonical
// URI construction, redirect resolution, sameAs aggregation, city
// verification, and link disambiguation.
package resolve

import (
	"context"
	"fmt"

	"github.com/coolbeans/geolink/pkg/dbpedia"
	"github.com/coolbeans/geolink/pkg/logger"
	"github.com/coolbeans/geolink/pkg/wikidata"
)

// Resolution is the full outcome of resolving one location string.
type Resolution struct {
	// Location is the original free-text query.
	Location string

	// SourceURI is the canonical DBpedia resource URI built from Location.
	SourceURI string

	// ResolvedURI is SourceURI after at most one redirect hop. Equal to
	// SourceURI when no redirect exists.
	ResolvedURI string

	// Links holds every sameAs target partitioned by source.
	Links dbpedia.Partition

	// IsCity reports whether any Wikidata candidate verified as a city.
	IsCity bool

	// WikidataURI is the first Wikidata candidate that verified as a city,
	// empty when none did.
	WikidataURI string

	// GeoNamesURI is the chosen GeoNames link, empty when none exists.
	GeoNamesURI string
}

// Resolver wires the two endpoint clients into one pipeline. Each concurrent
// caller should hold its own Resolver when the underlying clients rate-limit,
// or accept serialized query dispatch.
type Resolver struct {
	dbpediaClient  *dbpedia.Client
	wikidataClient *wikidata.Client
}

// NewResolver creates a Resolver over the given endpoint clients.
func NewResolver(dbpediaClient *dbpedia.Client, wikidataClient *wikidata.Client) *Resolver {
	return &Resolver{
		dbpediaClient:  dbpediaClient,
		wikidataClient: wikidataClient,
	}
}

// Resolve runs the full pipeline for one location. Endpoint failures abort
// this location only; empty result sets at any stage are ordinary data and
// produce a Resolution with the corresponding fields unset.
func (resolver *Resolver) Resolve(ctx context.Context, location string) (*Resolution, error) {
	sourceURI, err := dbpedia.ResourceURI(location)
	if err != nil {
		return nil, err
	}

	resolvedURI, err := resolver.dbpediaClient.ResolveRedirect(ctx, sourceURI)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", location, err)
	}
	if resolvedURI != sourceURI {
		logger.Debug("Followed redirect", "from", sourceURI, "to", resolvedURI)
	}

	links, err := resolver.dbpediaClient.SameAsLinks(ctx, resolvedURI)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", location, err)
	}

	resolution := &Resolution{
		Location:    location,
		SourceURI:   sourceURI,
		ResolvedURI: resolvedURI,
		Links:       dbpedia.PartitionLinks(links),
	}

	// First Wikidata candidate that verifies as a city wins; the rest are
	// dropped unevaluated. Aggregation order is the contract here.
	for _, candidate := range resolution.Links.Wikidata {
		isCity, err := resolver.wikidataClient.IsCity(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", location, err)
		}
		if isCity {
			resolution.IsCity = true
			resolution.WikidataURI = candidate
			break
		}
	}

	resolution.GeoNamesURI = ChooseGeoNames(resolution.Links.GeoNames, resolution.WikidataURI)

	logger.Info("Resolved location",
		"location", location,
		"uri", resolvedURI,
		"is_city", resolution.IsCity,
		"wikidata_links", len(resolution.Links.Wikidata),
		"geonames_links", len(resolution.Links.GeoNames))

	return resolution, nil
}

// ChooseGeoNames returns the first link not equal to excluded, or empty when
// no such link exists. An empty return is a valid terminal result.
func ChooseGeoNames(links []string, excluded string) string {
	for _, link := range links {
		if link != excluded {
			return link
		}
	}
	return ""
}
