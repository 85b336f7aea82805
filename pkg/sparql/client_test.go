package sparql

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(ClientConfig{
		Endpoint:   server.URL,
		RateLimit:  time.Millisecond,
		HTTPClient: server.Client(),
	})
	return client, server
}

func TestSelect_Bindings(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got == "" {
			t.Error("Expected query parameter on request")
		}
		if got := r.Header.Get("Accept"); got != "application/sparql-results+json" {
			t.Errorf("Expected SPARQL JSON accept header, got %q", got)
		}
		w.Write([]byte(`{
			"head": {"vars": ["same"]},
			"results": {"bindings": [
				{"same": {"type": "uri", "value": "http://www.wikidata.org/entity/Q1492"}},
				{"same": {"type": "uri", "value": "https://sws.geonames.org/3128760/"}}
			]}
		}`))
	})
	defer server.Close()

	bindings, err := client.Select(context.Background(), "SELECT ?same WHERE { ?s ?p ?same }")
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	values := Values(bindings, "same")
	expected := []string{
		"http://www.wikidata.org/entity/Q1492",
		"https://sws.geonames.org/3128760/",
	}
	if len(values) != len(expected) {
		t.Fatalf("Expected %d values, got %d", len(expected), len(values))
	}
	for i, value := range values {
		if value != expected[i] {
			t.Errorf("Value %d = %q, want %q", i, value, expected[i])
		}
	}
}

func TestSelect_EmptyResultSet(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"head": {"vars": ["target"]}, "results": {"bindings": []}}`))
	})
	defer server.Close()

	bindings, err := client.Select(context.Background(), "SELECT ?target WHERE { ?s ?p ?target }")
	if err != nil {
		t.Fatalf("Empty result set should not be an error, got: %v", err)
	}
	if len(bindings) != 0 {
		t.Errorf("Expected 0 bindings, got %d", len(bindings))
	}
}

func TestSelect_HTTPError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer server.Close()

	_, err := client.Select(context.Background(), "SELECT * WHERE { ?s ?p ?o }")
	if err == nil {
		t.Fatal("Expected error for HTTP 503")
	}

	var endpointError *EndpointError
	if !errors.As(err, &endpointError) {
		t.Fatalf("Expected EndpointError, got %T", err)
	}
	if endpointError.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", endpointError.StatusCode)
	}
}

func TestSelect_MalformedBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<!doctype html><html>not json</html>`))
	})
	defer server.Close()

	_, err := client.Select(context.Background(), "SELECT * WHERE { ?s ?p ?o }")
	if !IsEndpointError(err) {
		t.Fatalf("Expected EndpointError for malformed body, got %v", err)
	}
}

func TestAsk(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected bool
		wantErr  bool
	}{
		{"true", `{"head": {}, "boolean": true}`, true, false},
		{"false", `{"head": {}, "boolean": false}`, false, false},
		{"missing_boolean", `{"head": {}}`, false, true},
		{"malformed", `{{{`, false, true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(testCase.body))
			})
			defer server.Close()

			result, err := client.Ask(context.Background(), "ASK { ?s ?p ?o }")
			if testCase.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Ask returned error: %v", err)
			}
			if result != testCase.expected {
				t.Errorf("Ask = %v, want %v", result, testCase.expected)
			}
		})
	}
}

func TestBindingValue_Unbound(t *testing.T) {
	binding := Binding{"same": Term{Type: "uri", Value: "http://example.org/x"}}

	if got := binding.Value("same"); got != "http://example.org/x" {
		t.Errorf("Value(same) = %q", got)
	}
	if got := binding.Value("missing"); got != "" {
		t.Errorf("Expected empty string for unbound variable, got %q", got)
	}
}

func TestValues_SkipsUnbound(t *testing.T) {
	bindings := []Binding{
		{"super": Term{Type: "uri", Value: "http://www.wikidata.org/entity/Q1"}},
		{"other": Term{Type: "uri", Value: "http://www.wikidata.org/entity/Q2"}},
		{"super": Term{Type: "uri", Value: "http://www.wikidata.org/entity/Q3"}},
	}

	values := Values(bindings, "super")
	if len(values) != 2 {
		t.Fatalf("Expected 2 bound values, got %d", len(values))
	}
	if values[0] != "http://www.wikidata.org/entity/Q1" || values[1] != "http://www.wikidata.org/entity/Q3" {
		t.Errorf("Values preserved wrong order: %v", values)
	}
}
