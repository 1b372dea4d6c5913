package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/graphchat/internal/types"
)

func TestWidenPolicy_Resolve(t *testing.T) {
	tests := []struct {
		existing, observed, want string
	}{
		{TypeString, TypeString, TypeString},
		{TypeInteger, TypeFloat, TypeNumber},
		{TypeFloat, TypeInteger, TypeNumber},
		{TypeNumber, TypeInteger, TypeNumber},
		{TypeNull, TypeDate, TypeDate},
		{TypeBoolean, TypeNull, TypeBoolean},
		{TypeString, TypeInteger, TypeAny},
		{TypeAny, TypeString, TypeAny},
	}

	for _, tt := range tests {
		t.Run(tt.existing+"+"+tt.observed, func(t *testing.T) {
			assert.Equal(t, tt.want, WidenPolicy{}.Resolve(tt.existing, tt.observed))
		})
	}
}

func TestFirstSeenPolicy_Resolve(t *testing.T) {
	assert.Equal(t, TypeInteger, FirstSeenPolicy{}.Resolve(TypeInteger, TypeFloat))
}

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName("")
	require.NoError(t, err)
	assert.Equal(t, PolicyFirstSeen, p.Name())

	p, err = PolicyByName("widen")
	require.NoError(t, err)
	assert.Equal(t, PolicyWiden, p.Name())

	_, err = PolicyByName("newest")
	assert.Equal(t, ErrCodeInvalidConfig, types.CodeOf(err))
}
