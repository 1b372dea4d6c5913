package schema

import (
	"fmt"
	"reflect"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// Semantic type names produced by TypeOf.
const (
	TypeString        = "string"
	TypeInteger       = "integer"
	TypeFloat         = "float"
	TypeBoolean       = "boolean"
	TypeList          = "list"
	TypeMap           = "map"
	TypeDate          = "date"
	TypeTime          = "time"
	TypeLocalTime     = "local_time"
	TypeDateTime      = "datetime"
	TypeLocalDateTime = "local_datetime"
	TypeDuration      = "duration"
	TypePoint         = "point"
	TypeBytes         = "bytes"
	TypeNull          = "null"
)

// TypeOf maps a driver-native property value to its semantic type name.
// Unknown values fall back to their Go type name.
func TypeOf(v any) string {
	switch v.(type) {
	case nil:
		return TypeNull
	case string:
		return TypeString
	case bool:
		return TypeBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInteger
	case float32, float64:
		return TypeFloat
	case []byte:
		return TypeBytes
	case dbtype.Date:
		return TypeDate
	case dbtype.Time:
		return TypeTime
	case dbtype.LocalTime:
		return TypeLocalTime
	case time.Time:
		return TypeDateTime
	case dbtype.LocalDateTime:
		return TypeLocalDateTime
	case dbtype.Duration:
		return TypeDuration
	case dbtype.Point2D, dbtype.Point3D, *dbtype.Point2D, *dbtype.Point3D:
		return TypePoint
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return TypeList
	case reflect.Map:
		return TypeMap
	default:
		return fmt.Sprintf("%T", v)
	}
}

// propertiesOf extracts the property map of a sampled node or relationship.
func propertiesOf(v any) (map[string]any, bool) {
	switch e := v.(type) {
	case dbtype.Node:
		return e.Props, true
	case *dbtype.Node:
		return e.Props, true
	case dbtype.Relationship:
		return e.Props, true
	case *dbtype.Relationship:
		return e.Props, true
	case map[string]any:
		return e, true
	default:
		return nil, false
	}
}
