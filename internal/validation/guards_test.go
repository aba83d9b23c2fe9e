package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archimate-engine/batchmut/internal/engineerr"
)

func TestRunGuardsPassesCleanPlan(t *testing.T) {
	warnings, err := runGuards(guardContext{NumChanges: 3, MaxChanges: 500})
	require.Nil(t, err)
	assert.Empty(t, warnings)
}

func TestRunGuardsBlocksOversizedPlan(t *testing.T) {
	_, err := runGuards(guardContext{NumChanges: 10, MaxChanges: 5})
	require.NotNil(t, err)
	assert.Equal(t, engineerr.CodeValidationError, err.Code)
}

func TestRunGuardsBlocksMalformedIdempotencyKey(t *testing.T) {
	_, err := runGuards(guardContext{MaxChanges: 500, IdempotencyKey: "bad\nkey"})
	require.NotNil(t, err)
	assert.Equal(t, engineerr.CodeValidationError, err.Code)
}

func TestRunGuardsWarnsOnDuplicateStrategyShadow(t *testing.T) {
	warnings, err := runGuards(guardContext{
		MaxChanges:           500,
		GlobalDuplicateSet:   true,
		AnyPerOpDuplicateSet: true,
	})
	require.Nil(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "duplicate_strategy_shadow", warnings[0].GuardName)
}
