// Package category extracts (type, location) pairs from DBpedia category URIs.
//
// The grammar is fixed:
//
//	Category:<Type>_(in|of)_<Location>
//
// where <Type> is the shortest non-empty segment before the first connector
// and <Location> is everything after it. Underscores in both captures map
// back to spaces. Anything that does not fit the grammar is an Unmatched
// result, not an error: callers skip the record and continue.
package category

import "strings"

// Marker segments of the category URI grammar.
const (
	categoryPrefix = "Category:"
	connectorIn    = "_in_"
	connectorOf    = "_of_"
)

// Result is the tagged outcome of parsing a category URI.
type Result struct {
	// Matched reports whether the URI fit the grammar. Type and Location are
	// only meaningful when Matched is true.
	Matched bool

	// Type is the attraction type with underscores mapped to spaces
	// (e.g. "Museums").
	Type string

	// Location is the place name with underscores mapped to spaces
	// (e.g. "Valencia").
	Location string
}

// Parse applies the category grammar to a category URI. Both the full
// resource form ("http://dbpedia.org/resource/Category:Museums_in_Valencia")
// and the bare form ("Category:Museums_in_Valencia") are accepted.
func Parse(categoryURI string) Result {
	remainder, ok := categoryRemainder(categoryURI)
	if !ok || remainder == "" {
		return Result{}
	}

	connectorIndex, connectorLength := firstConnector(remainder)
	if connectorIndex < 1 {
		// No connector, or nothing before it to serve as the type.
		return Result{}
	}

	typeSegment := remainder[:connectorIndex]
	locationSegment := remainder[connectorIndex+connectorLength:]
	if locationSegment == "" {
		return Result{}
	}

	return Result{
		Matched:  true,
		Type:     strings.ReplaceAll(typeSegment, "_", " "),
		Location: strings.ReplaceAll(locationSegment, "_", " "),
	}
}

// categoryRemainder strips the "Category:" marker, accepting it only at the
// start of the string or at a path-segment boundary. "Not_Category:..." does
// not qualify.
func categoryRemainder(categoryURI string) (string, bool) {
	if strings.HasPrefix(categoryURI, categoryPrefix) {
		return categoryURI[len(categoryPrefix):], true
	}
	if index := strings.Index(categoryURI, "/"+categoryPrefix); index >= 0 {
		return categoryURI[index+1+len(categoryPrefix):], true
	}
	return "", false
}

// firstConnector returns the index and length of the earliest "_in_" or
// "_of_" occurrence, or (-1, 0) if neither is present. The earliest
// occurrence wins so the type capture stays as short as possible.
func firstConnector(segment string) (int, int) {
	inIndex := strings.Index(segment, connectorIn)
	ofIndex := strings.Index(segment, connectorOf)

	switch {
	case inIndex < 0 && ofIndex < 0:
		return -1, 0
	case ofIndex < 0 || (inIndex >= 0 && inIndex < ofIndex):
		return inIndex, len(connectorIn)
	default:
		return ofIndex, len(connectorOf)
	}
}
