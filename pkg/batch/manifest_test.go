package batch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseManifest(t *testing.T) {
	data := []byte(`
locations:
  - name: Barcelona
  - name: Valencia
    poi: http://dbpedia.org/resource/City_of_Arts_and_Sciences
    type: Museums
hierarchy_depth: 2
`)

	manifest, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest returned error: %v", err)
	}

	if len(manifest.Locations) != 2 {
		t.Fatalf("Expected 2 locations, got %d", len(manifest.Locations))
	}
	if manifest.HierarchyDepth != 2 {
		t.Errorf("Expected hierarchy depth 2, got %d", manifest.HierarchyDepth)
	}

	barcelona := manifest.Locations[0]
	if barcelona.POIURI() != "http://dbpedia.org/resource/POI_in_Barcelona" {
		t.Errorf("Unexpected default POI URI: %s", barcelona.POIURI())
	}
	if barcelona.TypeLabel() != DefaultTypeLabel {
		t.Errorf("Unexpected default type label: %s", barcelona.TypeLabel())
	}

	valencia := manifest.Locations[1]
	if valencia.POIURI() != "http://dbpedia.org/resource/City_of_Arts_and_Sciences" {
		t.Errorf("Explicit POI URI not honored: %s", valencia.POIURI())
	}
	if valencia.TypeLabel() != "Museums" {
		t.Errorf("Explicit type label not honored: %s", valencia.TypeLabel())
	}
}

func TestParseManifest_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"no_locations", "locations: []"},
		{"unnamed_location", "locations:\n  - poi: http://example.org/poi"},
		{"malformed_yaml", "locations: ["},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := ParseManifest([]byte(testCase.data)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.yaml")
	content := []byte("locations:\n  - name: Madrid\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if len(manifest.Locations) != 1 || manifest.Locations[0].Name != "Madrid" {
		t.Errorf("Unexpected manifest: %+v", manifest)
	}
}

func TestLoadManifest_MissingFile(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestManifestFromNames(t *testing.T) {
	manifest, err := ManifestFromNames([]string{"Barcelona", "Madrid"})
	if err != nil {
		t.Fatalf("ManifestFromNames returned error: %v", err)
	}
	if len(manifest.Locations) != 2 {
		t.Fatalf("Expected 2 locations, got %d", len(manifest.Locations))
	}

	if _, err := ManifestFromNames(nil); err == nil {
		t.Error("Expected error for empty name list")
	}
}
