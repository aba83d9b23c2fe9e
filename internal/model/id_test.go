package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewIDProducesDistinctNonEmptyValues(t *testing.T) {
	a := NewID()
	b := NewID()
	require.NotEmpty(t, a)
	require.NotEmpty(t, b)
	require.NotEqual(t, a, b)
}
