package schema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// GraphSchema is the discovered structure of a graph. Entities and
// Relationships keep discovery order.
type GraphSchema struct {
	Entities      *orderedmap.OrderedMap[string, *EntityType]
	Relationships *orderedmap.OrderedMap[string, *RelationshipType]
}

// NewGraphSchema returns an empty schema.
func NewGraphSchema() *GraphSchema {
	return &GraphSchema{
		Entities:      orderedmap.New[string, *EntityType](),
		Relationships: orderedmap.New[string, *RelationshipType](),
	}
}

// IsEmpty reports whether no labels and no relationship types were found.
func (s *GraphSchema) IsEmpty() bool {
	return s.Entities.Len() == 0 && s.Relationships.Len() == 0
}

// Entity returns the entity type for label.
func (s *GraphSchema) Entity(label string) (*EntityType, bool) {
	return s.Entities.Get(label)
}

// Relationship returns the relationship type named name.
func (s *GraphSchema) Relationship(name string) (*RelationshipType, bool) {
	return s.Relationships.Get(name)
}

// EntityNames returns the labels in discovery order.
func (s *GraphSchema) EntityNames() []string {
	names := make([]string, 0, s.Entities.Len())
	for pair := s.Entities.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// RelationshipNames returns the relationship types in discovery order.
func (s *GraphSchema) RelationshipNames() []string {
	names := make([]string, 0, s.Relationships.Len())
	for pair := s.Relationships.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Attribute is one property name with its inferred semantic type.
type Attribute struct {
	Name string
	Type string
}

// AttributeSet is an insertion ordered set of attributes keyed by name.
type AttributeSet struct {
	attrs *orderedmap.OrderedMap[string, Attribute]
}

func newAttributeSet() *AttributeSet {
	return &AttributeSet{attrs: orderedmap.New[string, Attribute]()}
}

// Len returns the number of attributes.
func (a *AttributeSet) Len() int {
	return a.attrs.Len()
}

// Get returns the attribute called name.
func (a *AttributeSet) Get(name string) (Attribute, bool) {
	return a.attrs.Get(name)
}

// List returns the attributes in first-observed order.
func (a *AttributeSet) List() []Attribute {
	out := make([]Attribute, 0, a.attrs.Len())
	for pair := a.attrs.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// observe records a sighting of name with type observed. A new name is
// appended; a known name keeps its position and its type is resolved by
// policy.
func (a *AttributeSet) observe(name, observed string, policy ConflictPolicy) {
	existing, ok := a.attrs.Get(name)
	if !ok {
		a.attrs.Set(name, Attribute{Name: name, Type: observed})
		return
	}

	resolved := policy.Resolve(existing.Type, observed)
	if resolved != existing.Type {
		a.attrs.Set(name, Attribute{Name: name, Type: resolved})
	}
}

// EntityType describes one node label.
type EntityType struct {
	Name       string
	Attributes *AttributeSet
}

func newEntityType(name string) *EntityType {
	return &EntityType{Name: name, Attributes: newAttributeSet()}
}

// Connection is a verified (source label, destination label) pair for a
// relationship type.
type Connection struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
}

// RelationshipType describes one relationship type and the label pairs it
// was observed to connect.
type RelationshipType struct {
	Name        string
	Attributes  *AttributeSet
	Connections []Connection
}

func newRelationshipType(name string) *RelationshipType {
	return &RelationshipType{Name: name, Attributes: newAttributeSet()}
}

// addConnection appends c unless it is already present.
func (r *RelationshipType) addConnection(c Connection) bool {
	for _, existing := range r.Connections {
		if existing == c {
			return false
		}
	}
	r.Connections = append(r.Connections, c)
	return true
}
