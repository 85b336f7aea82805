// Package batch runs the reconciliation pipeline over a manifest of
// locations, merging per-location graphs into one knowledge graph and
// accounting for failures without aborting the whole run.
package batch

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coolbeans/geolink/pkg/dbpedia"
)

// LocationSpec describes one location to link. POI and Type are optional;
// defaults produce a placeholder POI in the location and a generic
// "Attraction" type.
type LocationSpec struct {
	Name string `yaml:"name"`
	POI  string `yaml:"poi,omitempty"`
	Type string `yaml:"type,omitempty"`
}

// DefaultTypeLabel is used when a location spec names no attraction type.
const DefaultTypeLabel = "Attraction"

// POIURI returns the POI for this location, generating a placeholder URI
// when none was given.
func (spec LocationSpec) POIURI() string {
	if spec.POI != "" {
		return spec.POI
	}
	slug := strings.ReplaceAll(strings.TrimSpace(spec.Name), " ", "_")
	return dbpedia.ResourceNamespace + "POI_in_" + slug
}

// TypeLabel returns the attraction type for this location, defaulting when
// none was given.
func (spec LocationSpec) TypeLabel() string {
	if spec.Type != "" {
		return spec.Type
	}
	return DefaultTypeLabel
}

// Manifest is the YAML input document listing locations to process.
type Manifest struct {
	Locations      []LocationSpec `yaml:"locations"`
	HierarchyDepth int            `yaml:"hierarchy_depth,omitempty"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest parses manifest YAML and validates it.
func ParseManifest(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if len(manifest.Locations) == 0 {
		return nil, fmt.Errorf("manifest lists no locations")
	}
	for i, spec := range manifest.Locations {
		if strings.TrimSpace(spec.Name) == "" {
			return nil, fmt.Errorf("manifest location %d has no name", i)
		}
	}

	return &manifest, nil
}

// ManifestFromNames builds a manifest directly from location names, for CLI
// invocations that skip the manifest file.
func ManifestFromNames(names []string) (*Manifest, error) {
	specs := make([]LocationSpec, 0, len(names))
	for _, name := range names {
		specs = append(specs, LocationSpec{Name: name})
	}
	manifest := &Manifest{Locations: specs}
	if len(manifest.Locations) == 0 {
		return nil, fmt.Errorf("no locations given")
	}
	return manifest, nil
}
