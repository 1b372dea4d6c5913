package schema

import (
	"fmt"
	"strings"
)

// Render compiles a schema into the prose description given to the model.
// Output follows the schema's discovery order and is byte-for-byte stable
// for equal schemas.
func Render(s *GraphSchema) string {
	var b strings.Builder

	b.WriteString("The Knowledge graph contains nodes of the following types:\n")
	for pair := s.Entities.Oldest(); pair != nil; pair = pair.Next() {
		writeAttributes(&b, pair.Key, "node", pair.Value.Attributes)
	}

	b.WriteString("In addition the Knowledge graph contains edge of the following types:\n")
	for pair := s.Relationships.Oldest(); pair != nil; pair = pair.Next() {
		rel := pair.Value
		writeAttributes(&b, rel.Name, "edge", rel.Attributes)

		fmt.Fprintf(&b, "The %s edge connects the following entities:\n", rel.Name)
		for _, c := range rel.Connections {
			fmt.Fprintf(&b, "%s is connected via %s to %s, (:%s)-[:%s]->(:%s)\n",
				c.Source, rel.Name, c.Destination, c.Source, rel.Name, c.Destination)
		}
	}

	return b.String()
}

func writeAttributes(b *strings.Builder, name, kind string, attrs *AttributeSet) {
	if attrs.Len() == 0 {
		fmt.Fprintf(b, "The %s %s type has no attributes:\n", name, kind)
		return
	}

	fmt.Fprintf(b, "The %s %s type has the following set of attributes:\n", name, kind)
	for _, a := range attrs.List() {
		fmt.Fprintf(b, "The %s attribute is of type %s\n", a.Name, a.Type)
	}
}
