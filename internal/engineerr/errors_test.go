package engineerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorFormatsWithoutOperationIndex(t *testing.T) {
	e := New(CodeValidationError, "bad plan")
	require.Equal(t, "ValidationError: bad plan", e.Error())
	require.Nil(t, e.OperationIndex)
}

func TestAtTagsOperationIndex(t *testing.T) {
	e := At(CodeMissingReference, 3, "unknown id")
	require.Equal(t, "MissingReference: unknown id (operation 3)", e.Error())
	require.NotNil(t, e.OperationIndex)
	require.Equal(t, 3, *e.OperationIndex)
}

func TestWrapPreservesUnwrapChain(t *testing.T) {
	cause := errors.New("disk full")
	e := Wrap(cause)
	require.Equal(t, CodeHostError, e.Code)
	require.True(t, errors.Is(e, cause))
}

func TestWithDetailsAttachesAndReturnsSelf(t *testing.T) {
	e := New(CodeSilentRollback, "missing writes")
	out := e.WithDetails(map[string]any{"missingCount": 2})
	require.Same(t, e, out)
	require.Equal(t, 2, e.Details["missingCount"])
}
