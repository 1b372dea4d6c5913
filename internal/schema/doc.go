// Package schema discovers the structure of a Cypher graph at runtime and
// compiles it into a prose description for a language model.
//
// Discovery (Sampler.Discover) runs only read queries:
//
//  1. CALL db.labels()
//  2. per label, MATCH (n:`L`) RETURN n LIMIT $limit
//  3. CALL db.relationshipTypes()
//  4. per type, MATCH ()-[e:`R`]->() RETURN e LIMIT $limit
//  5. per type, endpoint probing through a ConnectionProber
//
// Attributes are the union of property names over the sampled elements, so
// a property carried only by unsampled elements is not reported. The type
// of an attribute seen with different value types is decided by a
// ConflictPolicy.
//
// Render turns a GraphSchema into fixed-structure prose. Document gives the
// same data as plain structs for JSON or YAML output.
package schema
