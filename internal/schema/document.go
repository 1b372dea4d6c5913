package schema

// Document is a plain, ordered view of a GraphSchema for JSON and YAML
// output.
type Document struct {
	Nodes []EntityDocument       `json:"nodes" yaml:"nodes"`
	Edges []RelationshipDocument `json:"edges" yaml:"edges"`
}

// AttributeDocument is one attribute in a Document.
type AttributeDocument struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// EntityDocument is one node label in a Document.
type EntityDocument struct {
	Label      string              `json:"label" yaml:"label"`
	Attributes []AttributeDocument `json:"attributes" yaml:"attributes"`
}

// RelationshipDocument is one relationship type in a Document.
type RelationshipDocument struct {
	Type       string              `json:"type" yaml:"type"`
	Attributes []AttributeDocument `json:"attributes" yaml:"attributes"`
	Connects   []Connection        `json:"connects" yaml:"connects"`
}

// Document converts the schema to its serializable view.
func (s *GraphSchema) Document() Document {
	doc := Document{
		Nodes: make([]EntityDocument, 0, s.Entities.Len()),
		Edges: make([]RelationshipDocument, 0, s.Relationships.Len()),
	}

	for pair := s.Entities.Oldest(); pair != nil; pair = pair.Next() {
		doc.Nodes = append(doc.Nodes, EntityDocument{
			Label:      pair.Key,
			Attributes: attributeDocuments(pair.Value.Attributes),
		})
	}

	for pair := s.Relationships.Oldest(); pair != nil; pair = pair.Next() {
		connects := append([]Connection{}, pair.Value.Connections...)
		doc.Edges = append(doc.Edges, RelationshipDocument{
			Type:       pair.Key,
			Attributes: attributeDocuments(pair.Value.Attributes),
			Connects:   connects,
		})
	}

	return doc
}

func attributeDocuments(attrs *AttributeSet) []AttributeDocument {
	out := make([]AttributeDocument, 0, attrs.Len())
	for _, a := range attrs.List() {
		out = append(out, AttributeDocument{Name: a.Name, Type: a.Type})
	}
	return out
}
