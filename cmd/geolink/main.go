package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coolbeans/geolink/pkg/batch"
	"github.com/coolbeans/geolink/pkg/category"
	"github.com/coolbeans/geolink/pkg/config"
	"github.com/coolbeans/geolink/pkg/graph"
	"github.com/coolbeans/geolink/pkg/logger"
	"github.com/coolbeans/geolink/pkg/logger/console"
	"github.com/coolbeans/geolink/pkg/resolve"
	"github.com/coolbeans/geolink/pkg/store"
)

var version = "0.1.0"

var verbose bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "geolink",
		Short: "Link places across linked-data sources",
		Long: `Geolink reconciles points of interest and cities across DBpedia,
Wikidata and GeoNames, and emits the result as an RDF knowledge graph.

For each location it resolves the canonical DBpedia resource, aggregates
owl:sameAs links, verifies city status against Wikidata, and serializes
the combined graph as Turtle or Graphviz DOT.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(console.NewConsoleLogger(console.Params{Verbose: verbose}))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(linkCmd())
	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(harvestCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func linkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link [locations...]",
		Short: "Link locations and build the knowledge graph",
		Long: `Run the full pipeline for the given locations (or a manifest file)
and write the merged knowledge graph.

Example:
  geolink link Barcelona Madrid Valencia
  geolink link --manifest locations.yaml --output tourist_kg.ttl --parallel 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath, _ := cmd.Flags().GetString("manifest")
			output, _ := cmd.Flags().GetString("output")
			format, _ := cmd.Flags().GetString("format")
			parallel, _ := cmd.Flags().GetInt("parallel")
			depth, _ := cmd.Flags().GetInt("depth")

			manifest, err := loadLocations(manifestPath, args)
			if err != nil {
				return err
			}

			cfg := config.Load()
			runner := batch.NewRunner(batch.RunnerParams{
				Clients:        batch.EndpointClients(cfg),
				Parallel:       parallel,
				HierarchyDepth: depth,
			})

			report, merged, err := runner.Run(cmd.Context(), manifest)
			if err != nil {
				return err
			}

			if err := writeGraph(merged, output, format); err != nil {
				return err
			}

			fmt.Printf("Run %s: %d linked (%d verified cities), %d failed, %d triples -> %s\n",
				report.RunID, len(report.Linked), report.Verified(),
				len(report.Failed), report.TotalTriples, output)
			for _, failure := range report.Failed {
				fmt.Printf("  failed: %s: %v\n", failure.Location, failure.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringP("manifest", "m", "", "YAML manifest of locations")
	cmd.Flags().StringP("output", "o", "tourist_kg.ttl", "Output file path")
	cmd.Flags().StringP("format", "f", "turtle", "Output format: turtle or dot")
	cmd.Flags().IntP("parallel", "p", 1, "Number of locations processed concurrently")
	cmd.Flags().Int("depth", 0, "Type-hierarchy depth for verified cities (0 disables, max 3)")

	return cmd
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <location>",
		Short: "Resolve one location and print its links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			dbpediaClient, wikidataClient := batch.EndpointClients(cfg)()
			resolver := resolve.NewResolver(dbpediaClient, wikidataClient)

			resolution, err := resolver.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Location:  %s\n", resolution.Location)
			fmt.Printf("DBpedia:   %s\n", resolution.ResolvedURI)
			fmt.Printf("City:      %t\n", resolution.IsCity)
			if resolution.WikidataURI != "" {
				fmt.Printf("Wikidata:  %s\n", resolution.WikidataURI)
			}
			if resolution.GeoNamesURI != "" {
				fmt.Printf("GeoNames:  %s\n", resolution.GeoNamesURI)
			}
			for _, other := range resolution.Links.Other {
				fmt.Printf("Other:     %s\n", other)
			}
			return nil
		},
	}
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <category-uri>...",
		Short: "Parse category URIs into (type, location) pairs",
		Long: `Parse DBpedia category URIs of the form
Category:<Type>_(in|of)_<Location> and print the extracted pairs.
Unparsable URIs are reported and skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, uri := range args {
				result := category.Parse(uri)
				if !result.Matched {
					fmt.Printf("%s: no match\n", uri)
					continue
				}
				fmt.Printf("%s: type=%q location=%q\n", uri, result.Type, result.Location)
			}
			return nil
		},
	}
}

func harvestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Discover attraction categories and link their POIs",
		Long: `Discover tourist-attraction categories from DBpedia, parse each into
a (type, location) pair, resolve the location, and add the category's
POIs to the knowledge graph.

Example:
  geolink harvest --limit 5 --output tourist_kg.ttl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			output, _ := cmd.Flags().GetString("output")
			format, _ := cmd.Flags().GetString("format")
			depth, _ := cmd.Flags().GetInt("depth")

			cfg := config.Load()
			dbpediaClient, wikidataClient := batch.EndpointClients(cfg)()
			resolver := resolve.NewResolver(dbpediaClient, wikidataClient)
			builder := graph.NewBuilder()

			categories, err := dbpediaClient.AttractionCategories(cmd.Context(), limit)
			if err != nil {
				return err
			}

			linked, skipped := 0, 0
			for _, categoryURI := range categories {
				parsed := category.Parse(categoryURI)
				if !parsed.Matched {
					logger.Debug("Skipping unparsable category", "uri", categoryURI)
					skipped++
					continue
				}

				resolution, err := resolver.Resolve(cmd.Context(), parsed.Location)
				if err != nil {
					logger.Warn("Skipping category, location failed",
						"category", categoryURI, "location", parsed.Location, "error", err)
					skipped++
					continue
				}

				pois, err := dbpediaClient.POIsForCategory(cmd.Context(), categoryURI)
				if err != nil {
					logger.Warn("Skipping category, POI query failed",
						"category", categoryURI, "error", err)
					skipped++
					continue
				}

				for _, poi := range pois {
					if err := builder.AddPOI(poi.URI, parsed.Type, resolution); err != nil {
						return err
					}
					if depth > 0 && resolution.WikidataURI != "" {
						chain, err := wikidataClient.Superclasses(cmd.Context(), resolution.WikidataURI, depth)
						if err != nil {
							return err
						}
						if err := builder.AddTypeHierarchy(poi.URI, parsed.Type, chain); err != nil {
							return err
						}
					}
					linked++
				}
			}

			if err := writeGraph(builder, output, format); err != nil {
				return err
			}

			fmt.Printf("Harvested %d categories: %d POIs linked, %d categories skipped -> %s\n",
				len(categories), linked, skipped, output)
			return nil
		},
	}

	cmd.Flags().IntP("limit", "l", 10, "Maximum number of categories to discover")
	cmd.Flags().StringP("output", "o", "tourist_kg.ttl", "Output file path")
	cmd.Flags().StringP("format", "f", "turtle", "Output format: turtle or dot")
	cmd.Flags().Int("depth", 0, "Type-hierarchy depth for verified cities (0 disables, max 3)")

	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [locations...]",
		Short: "Run the pipeline and export the graph for visualization",
		Long: `Like link, but defaults to Graphviz DOT output for rendering with
dot or similar tools.

Example:
  geolink export Barcelona --output kg.dot | dot -Tpng -o kg.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath, _ := cmd.Flags().GetString("manifest")
			output, _ := cmd.Flags().GetString("output")
			format, _ := cmd.Flags().GetString("format")
			parallel, _ := cmd.Flags().GetInt("parallel")

			manifest, err := loadLocations(manifestPath, args)
			if err != nil {
				return err
			}

			cfg := config.Load()
			runner := batch.NewRunner(batch.RunnerParams{
				Clients:  batch.EndpointClients(cfg),
				Parallel: parallel,
			})

			_, merged, err := runner.Run(cmd.Context(), manifest)
			if err != nil {
				return err
			}
			return writeGraph(merged, output, format)
		},
	}

	cmd.Flags().StringP("manifest", "m", "", "YAML manifest of locations")
	cmd.Flags().StringP("output", "o", "kg.dot", "Output file path")
	cmd.Flags().StringP("format", "f", "dot", "Output format: turtle or dot")
	cmd.Flags().IntP("parallel", "p", 1, "Number of locations processed concurrently")

	return cmd
}

// loadLocations builds the manifest from a file or bare location arguments.
func loadLocations(manifestPath string, args []string) (*batch.Manifest, error) {
	if manifestPath != "" {
		return batch.LoadManifest(manifestPath)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("no locations given: pass location names or --manifest")
	}
	return batch.ManifestFromNames(args)
}

// writeGraph serializes the builder's triples to path in the given format.
func writeGraph(builder *graph.Builder, path, format string) error {
	switch format {
	case "turtle", "ttl":
		return store.NewTurtleSerializer().SerializeToFile(builder.Store(), path)
	case "dot":
		if err := os.WriteFile(path, []byte(graph.ToDOT(builder.Store())), 0644); err != nil {
			return fmt.Errorf("failed to write dot file %s: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q: use turtle or dot", format)
	}
}
