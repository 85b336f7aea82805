package batch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coolbeans/geolink/pkg/config"
	"github.com/coolbeans/geolink/pkg/dbpedia"
	"github.com/coolbeans/geolink/pkg/graph"
	"github.com/coolbeans/geolink/pkg/logger"
	"github.com/coolbeans/geolink/pkg/resolve"
	"github.com/coolbeans/geolink/pkg/sparql"
	"github.com/coolbeans/geolink/pkg/wikidata"
)

// ClientFactory produces a fresh pair of endpoint clients. Each in-flight
// location gets its own pair so rate limiting never serializes across
// workers unintentionally.
type ClientFactory func() (*dbpedia.Client, *wikidata.Client)

// EndpointClients builds a factory from endpoint configuration.
func EndpointClients(cfg config.Config) ClientFactory {
	return func() (*dbpedia.Client, *wikidata.Client) {
		httpClient := sparql.NewTimeoutHTTPClient(cfg.RequestTimeout)
		dbpediaClient := dbpedia.NewClient(sparql.NewClient(sparql.ClientConfig{
			Endpoint:   cfg.DBpediaEndpoint,
			RateLimit:  cfg.RequestInterval,
			HTTPClient: httpClient,
		}))
		wikidataClient := wikidata.NewClient(sparql.NewClient(sparql.ClientConfig{
			Endpoint:   cfg.WikidataEndpoint,
			RateLimit:  cfg.RequestInterval,
			HTTPClient: httpClient,
		}))
		return dbpediaClient, wikidataClient
	}
}

// RunnerParams configures a batch run.
type RunnerParams struct {
	Clients ClientFactory

	// Parallel bounds the number of locations processed concurrently.
	// Values below 1 run sequentially.
	Parallel int

	// HierarchyDepth bounds the superclass walk for verified cities' type
	// hierarchies. Zero disables hierarchy retrieval.
	HierarchyDepth int
}

// Runner processes a manifest of locations and merges their graphs.
type Runner struct {
	params RunnerParams
}

// NewRunner creates a Runner.
func NewRunner(params RunnerParams) *Runner {
	if params.Parallel < 1 {
		params.Parallel = 1
	}
	return &Runner{params: params}
}

// Run resolves every manifest location, builds per-location graphs, and
// merges them into one. A failed location is recorded in the report and
// contributes nothing to the merged graph; it never aborts the batch.
func (runner *Runner) Run(ctx context.Context, manifest *Manifest) (*Report, *graph.Builder, error) {
	report := newReport()
	merged := graph.NewBuilder()

	depth := runner.params.HierarchyDepth
	if manifest.HierarchyDepth > 0 {
		depth = manifest.HierarchyDepth
	}

	logger.Info("Starting batch run",
		"run_id", report.RunID,
		"locations", len(manifest.Locations),
		"parallel", runner.params.Parallel)

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runner.params.Parallel)

	for _, spec := range manifest.Locations {
		spec := spec
		group.Go(func() error {
			local, result, err := runner.processLocation(groupCtx, spec, depth)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("Location failed", "location", spec.Name, "error", err)
				report.Failed = append(report.Failed, LocationFailure{Location: spec.Name, Err: err})
				return nil
			}
			result.Triples = merged.Merge(local)
			report.Linked = append(report.Linked, *result)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	report.FinishedAt = time.Now()
	report.TotalTriples = merged.Store().Count()

	logger.Info("Batch run finished",
		"run_id", report.RunID,
		"linked", len(report.Linked),
		"failed", len(report.Failed),
		"triples", report.TotalTriples,
		"duration", report.Duration().String())

	return report, merged, nil
}

// processLocation runs the pipeline for one location into a private builder.
// Nothing touches the merged graph until the whole location succeeds.
func (runner *Runner) processLocation(ctx context.Context, spec LocationSpec, depth int) (*graph.Builder, *LocationResult, error) {
	dbpediaClient, wikidataClient := runner.params.Clients()
	resolver := resolve.NewResolver(dbpediaClient, wikidataClient)

	resolution, err := resolver.Resolve(ctx, spec.Name)
	if err != nil {
		return nil, nil, err
	}

	local := graph.NewBuilder()
	if err := local.AddPOI(spec.POIURI(), spec.TypeLabel(), resolution); err != nil {
		return nil, nil, err
	}

	if depth > 0 && resolution.WikidataURI != "" {
		chain, err := wikidataClient.Superclasses(ctx, resolution.WikidataURI, depth)
		if err != nil {
			return nil, nil, err
		}
		if err := local.AddTypeHierarchy(spec.POIURI(), spec.TypeLabel(), chain); err != nil {
			return nil, nil, err
		}
	}

	result := &LocationResult{
		Location:    spec.Name,
		CityURI:     resolution.ResolvedURI,
		IsCity:      resolution.IsCity,
		WikidataURI: resolution.WikidataURI,
		GeoNamesURI: resolution.GeoNamesURI,
	}
	return local, result, nil
}
