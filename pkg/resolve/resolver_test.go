package resolve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coolbeans/geolink/pkg/dbpedia"
	"github.com/coolbeans/geolink/pkg/sparql"
	"github.com/coolbeans/geolink/pkg/wikidata"
)

// fakeEndpoints stands in for the two public SPARQL endpoints. sameAs keys a
// resource URI to its links; cities holds entity URIs that verify as cities;
// redirects keys a source URI to its target.
type fakeEndpoints struct {
	redirects map[string]string
	sameAs    map[string][]string
	cities    map[string]bool
}

func (f *fakeEndpoints) newResolver(t *testing.T) (*Resolver, func()) {
	t.Helper()

	dbpediaServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		switch {
		case strings.Contains(query, "wikiPageRedirects"):
			for source, target := range f.redirects {
				if strings.Contains(query, "<"+source+">") {
					fmt.Fprintf(w, `{"head": {"vars": ["target"]}, "results": {"bindings": [{"target": {"type": "uri", "value": "%s"}}]}}`, target)
					return
				}
			}
			w.Write([]byte(`{"head": {"vars": []}, "results": {"bindings": []}}`))
		case strings.Contains(query, "owl:sameAs"):
			for resource, links := range f.sameAs {
				if strings.Contains(query, "<"+resource+">") {
					entries := make([]string, 0, len(links))
					for _, link := range links {
						entries = append(entries, fmt.Sprintf(`{"same": {"type": "uri", "value": "%s"}}`, link))
					}
					fmt.Fprintf(w, `{"head": {"vars": ["same"]}, "results": {"bindings": [%s]}}`, strings.Join(entries, ","))
					return
				}
			}
			w.Write([]byte(`{"head": {"vars": []}, "results": {"bindings": []}}`))
		default:
			w.Write([]byte(`{"head": {"vars": []}, "results": {"bindings": []}}`))
		}
	}))

	wikidataServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		for entity, isCity := range f.cities {
			if strings.Contains(query, "<"+entity+">") {
				fmt.Fprintf(w, `{"head": {}, "boolean": %t}`, isCity)
				return
			}
		}
		w.Write([]byte(`{"head": {}, "boolean": false}`))
	}))

	resolver := NewResolver(
		dbpedia.NewClient(sparql.NewClient(sparql.ClientConfig{
			Endpoint:   dbpediaServer.URL,
			RateLimit:  time.Millisecond,
			HTTPClient: dbpediaServer.Client(),
		})),
		wikidata.NewClient(sparql.NewClient(sparql.ClientConfig{
			Endpoint:   wikidataServer.URL,
			RateLimit:  time.Millisecond,
			HTTPClient: wikidataServer.Client(),
		})),
	)

	return resolver, func() {
		dbpediaServer.Close()
		wikidataServer.Close()
	}
}

func TestResolve_VerifiedCityWithGeoNames(t *testing.T) {
	endpoints := &fakeEndpoints{
		sameAs: map[string][]string{
			"http://dbpedia.org/resource/Barcelona": {
				"http://www.wikidata.org/entity/Q1492",
				"https://sws.geonames.org/3128760/",
				"http://rdf.freebase.com/ns/m.01f62",
			},
		},
		cities: map[string]bool{
			"http://www.wikidata.org/entity/Q1492": true,
		},
	}
	resolver, teardown := endpoints.newResolver(t)
	defer teardown()

	resolution, err := resolver.Resolve(context.Background(), "Barcelona")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if resolution.SourceURI != "http://dbpedia.org/resource/Barcelona" {
		t.Errorf("Unexpected source URI: %s", resolution.SourceURI)
	}
	if resolution.ResolvedURI != resolution.SourceURI {
		t.Errorf("No redirect configured, ResolvedURI should equal SourceURI, got %s", resolution.ResolvedURI)
	}
	if !resolution.IsCity {
		t.Error("Expected IsCity = true")
	}
	if resolution.WikidataURI != "http://www.wikidata.org/entity/Q1492" {
		t.Errorf("Unexpected Wikidata URI: %s", resolution.WikidataURI)
	}
	if resolution.GeoNamesURI != "https://sws.geonames.org/3128760/" {
		t.Errorf("Unexpected GeoNames URI: %s", resolution.GeoNamesURI)
	}
	if len(resolution.Links.Other) != 1 {
		t.Errorf("Other links must be retained, got %v", resolution.Links.Other)
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	// Three candidates, only the middle one verifies. The pipeline must stop
	// there and never promote a later candidate.
	endpoints := &fakeEndpoints{
		sameAs: map[string][]string{
			"http://dbpedia.org/resource/Springfield": {
				"http://www.wikidata.org/entity/Q111",
				"http://www.wikidata.org/entity/Q222",
				"http://www.wikidata.org/entity/Q333",
			},
		},
		cities: map[string]bool{
			"http://www.wikidata.org/entity/Q111": false,
			"http://www.wikidata.org/entity/Q222": true,
			"http://www.wikidata.org/entity/Q333": true,
		},
	}
	resolver, teardown := endpoints.newResolver(t)
	defer teardown()

	for run := 0; run < 3; run++ {
		resolution, err := resolver.Resolve(context.Background(), "Springfield")
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		if resolution.WikidataURI != "http://www.wikidata.org/entity/Q222" {
			t.Fatalf("Run %d: expected first verifying candidate Q222, got %s", run, resolution.WikidataURI)
		}
	}
}

func TestResolve_NoLinks(t *testing.T) {
	endpoints := &fakeEndpoints{}
	resolver, teardown := endpoints.newResolver(t)
	defer teardown()

	resolution, err := resolver.Resolve(context.Background(), "Nowhereville")
	if err != nil {
		t.Fatalf("Zero sameAs links must not be an error, got: %v", err)
	}

	if resolution.IsCity {
		t.Error("Expected IsCity = false with no links")
	}
	if resolution.WikidataURI != "" || resolution.GeoNamesURI != "" {
		t.Errorf("Expected empty link URIs, got wd=%q geo=%q", resolution.WikidataURI, resolution.GeoNamesURI)
	}
}

func TestResolve_FollowsRedirect(t *testing.T) {
	endpoints := &fakeEndpoints{
		redirects: map[string]string{
			"http://dbpedia.org/resource/NYC": "http://dbpedia.org/resource/New_York_City",
		},
		sameAs: map[string][]string{
			"http://dbpedia.org/resource/New_York_City": {
				"http://www.wikidata.org/entity/Q60",
			},
		},
		cities: map[string]bool{
			"http://www.wikidata.org/entity/Q60": true,
		},
	}
	resolver, teardown := endpoints.newResolver(t)
	defer teardown()

	resolution, err := resolver.Resolve(context.Background(), "NYC")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolution.ResolvedURI != "http://dbpedia.org/resource/New_York_City" {
		t.Errorf("Redirect not followed: %s", resolution.ResolvedURI)
	}
	if resolution.WikidataURI != "http://www.wikidata.org/entity/Q60" {
		t.Errorf("sameAs must be queried on the redirect target, got %s", resolution.WikidataURI)
	}
}

func TestResolve_InvalidLocation(t *testing.T) {
	endpoints := &fakeEndpoints{}
	resolver, teardown := endpoints.newResolver(t)
	defer teardown()

	_, err := resolver.Resolve(context.Background(), "   ")
	if !errors.Is(err, dbpedia.ErrInvalidLocation) {
		t.Fatalf("Expected ErrInvalidLocation, got %v", err)
	}
}

func TestResolve_EndpointFailurePropagates(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer failing.Close()

	resolver := NewResolver(
		dbpedia.NewClient(sparql.NewClient(sparql.ClientConfig{
			Endpoint:   failing.URL,
			RateLimit:  time.Millisecond,
			HTTPClient: failing.Client(),
		})),
		wikidata.NewClient(sparql.NewClient(sparql.ClientConfig{
			Endpoint:   failing.URL,
			RateLimit:  time.Millisecond,
			HTTPClient: failing.Client(),
		})),
	)

	_, err := resolver.Resolve(context.Background(), "Barcelona")
	if !sparql.IsEndpointError(err) {
		t.Fatalf("Expected EndpointError, got %v", err)
	}
}

func TestChooseGeoNames(t *testing.T) {
	testCases := []struct {
		name     string
		links    []string
		excluded string
		expected string
	}{
		{"empty", nil, "", ""},
		{"single", []string{"https://sws.geonames.org/1/"}, "", "https://sws.geonames.org/1/"},
		{"skips_excluded", []string{"x", "https://sws.geonames.org/2/"}, "x", "https://sws.geonames.org/2/"},
		{"all_excluded", []string{"x"}, "x", ""},
		{"first_wins", []string{"https://sws.geonames.org/1/", "https://sws.geonames.org/2/"}, "", "https://sws.geonames.org/1/"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := ChooseGeoNames(testCase.links, testCase.excluded)
			if got != testCase.expected {
				t.Errorf("ChooseGeoNames(%v, %q) = %q, want %q",
					testCase.links, testCase.excluded, got, testCase.expected)
			}
			if testCase.excluded != "" && got == testCase.excluded {
				t.Errorf("Exclusion invariant violated: returned excluded URI %q", got)
			}
		})
	}
}
