package sparql

// Term is a single RDF term bound to a query variable.
type Term struct {
	// Type is the term kind reported by the endpoint: "uri", "literal" or
	// "bnode".
	Type string `json:"type"`

	// Value is the lexical form of the term.
	Value string `json:"value"`

	// Lang is the language tag for language-tagged literals, if any.
	Lang string `json:"xml:lang,omitempty"`

	// Datatype is the datatype IRI for typed literals, if any.
	Datatype string `json:"datatype,omitempty"`
}

// Binding maps query variable names to the terms bound in one solution.
type Binding map[string]Term

// Value returns the lexical value bound to the named variable, or the empty
// string when the variable is unbound in this solution.
func (binding Binding) Value(variable string) string {
	return binding[variable].Value
}

// Values collects the lexical values bound to the named variable across all
// bindings, preserving response order and skipping unbound solutions.
func Values(bindings []Binding, variable string) []string {
	values := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		if term, ok := binding[variable]; ok {
			values = append(values, term.Value)
		}
	}
	return values
}

// selectResponse is the application/sparql-results+json layout for SELECT.
type selectResponse struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
}

// askResponse is the application/sparql-results+json layout for ASK.
// The boolean is a pointer so a missing field is distinguishable from false.
type askResponse struct {
	Head    struct{} `json:"head"`
	Boolean *bool    `json:"boolean"`
}
