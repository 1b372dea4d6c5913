package schema

import (
	"fmt"

	"github.com/zero-day-ai/graphchat/internal/types"
)

// ConflictPolicy decides the recorded type of an attribute that is seen
// again with a possibly different type.
type ConflictPolicy interface {
	Name() string
	Resolve(existing, observed string) string
}

// Policy names accepted by PolicyByName.
const (
	PolicyFirstSeen = "first_seen"
	PolicyWiden     = "widen"
)

// Widened type names.
const (
	TypeNumber = "number"
	TypeAny    = "any"
)

// FirstSeenPolicy keeps the type of the first observed value.
type FirstSeenPolicy struct{}

func (FirstSeenPolicy) Name() string { return PolicyFirstSeen }

func (FirstSeenPolicy) Resolve(existing, _ string) string { return existing }

// WidenPolicy reconciles disagreements: integer and float widen to number,
// null defers to the other side, and anything else becomes any.
type WidenPolicy struct{}

func (WidenPolicy) Name() string { return PolicyWiden }

func (WidenPolicy) Resolve(existing, observed string) string {
	switch {
	case existing == observed:
		return existing
	case existing == TypeNull:
		return observed
	case observed == TypeNull:
		return existing
	case isNumeric(existing) && isNumeric(observed):
		return TypeNumber
	default:
		return TypeAny
	}
}

func isNumeric(t string) bool {
	return t == TypeInteger || t == TypeFloat || t == TypeNumber
}

// PolicyByName resolves a configured policy name. Empty selects first_seen.
func PolicyByName(name string) (ConflictPolicy, error) {
	switch name {
	case "", PolicyFirstSeen:
		return FirstSeenPolicy{}, nil
	case PolicyWiden:
		return WidenPolicy{}, nil
	default:
		return nil, types.NewError(ErrCodeInvalidConfig,
			fmt.Sprintf("unknown conflict policy %q, must be one of: %s, %s", name, PolicyFirstSeen, PolicyWiden))
	}
}
