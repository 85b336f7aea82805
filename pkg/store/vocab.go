package store

import "strings"

// Namespace URIs for the vocabularies the knowledge graph draws on.
const (
	NamespaceRDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceRDFS = "http://www.w3.org/2000/01/rdf-schema#"
	NamespaceOWL  = "http://www.w3.org/2002/07/owl#"
	NamespaceXSD  = "http://www.w3.org/2001/XMLSchema#"
	NamespaceSKOS = "http://www.w3.org/2004/02/skos/core#"
	NamespaceDCT  = "http://purl.org/dc/terms/"

	// NamespaceEx is the project ontology namespace all emitted classes and
	// properties live in.
	NamespaceEx = "http://example.org/ontology/"

	NamespaceDBR = "http://dbpedia.org/resource/"
	NamespaceDBO = "http://dbpedia.org/ontology/"
	NamespaceWD  = "http://www.wikidata.org/entity/"
	NamespaceWDT = "http://www.wikidata.org/prop/direct/"
	NamespaceGeo = "http://sws.geonames.org/"
)

// Well-known predicates, in prefixed form.
const (
	RDFType        = "rdf:type"
	RDFSLabel      = "rdfs:label"
	RDFSSubClassOf = "rdfs:subClassOf"
	OWLSameAs      = "owl:sameAs"
)

// Ontology classes.
const (
	ClassPOI            = "ex:POI"
	ClassCity           = "ex:City"
	ClassAttractionType = "ex:AttractionType"
)

// Ontology properties.
const (
	PropLocatedIn      = "ex:locatedIn"
	PropTypeString     = "ex:typeString"
	PropLocationString = "ex:locationString"
	PropIsVerifiedCity = "ex:isVerifiedCity"
	PropHasType        = "ex:hasType"
)

// XSDBoolean is the boolean datatype in prefixed form, for typed literals.
const XSDBoolean = "xsd:boolean"

// TypeNodeURI derives the ontology node for an attraction-type label by
// replacing spaces with underscores: "art museum" -> "ex:art_museum".
func TypeNodeURI(label string) string {
	return "ex:" + strings.ReplaceAll(strings.TrimSpace(label), " ", "_")
}

// TypedLiteral renders a Turtle typed literal: TypedLiteral("true",
// XSDBoolean) -> `"true"^^xsd:boolean`. The serializer passes these through
// unchanged.
func TypedLiteral(value, datatype string) string {
	return `"` + value + `"^^` + datatype
}

// BooleanLiteral renders an xsd:boolean typed literal.
func BooleanLiteral(value bool) string {
	if value {
		return TypedLiteral("true", XSDBoolean)
	}
	return TypedLiteral("false", XSDBoolean)
}
