package ops

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
)

func TestDecodeUnknownTagReturnsValidationError(t *testing.T) {
	_, err := Decode("doesNotExist", json.RawMessage(`{}`), 0)
	require.NotNil(t, err)
	require.Equal(t, engineerr.CodeValidationError, err.Code)
}

func TestDecodeCreateElementNormalisesKindAndRejectsUnknown(t *testing.T) {
	raw := json.RawMessage(`{"type":"Business Actor","name":"Alice"}`)
	decoded, err := Decode("createElement", raw, 0)
	require.Nil(t, err)
	op := decoded.(*CreateElementOp)
	require.Equal(t, model.KindBusinessActor, op.Type)
	require.Equal(t, "Alice", op.Name)

	_, err = Decode("createElement", json.RawMessage(`{"type":"not-a-kind","name":"X"}`), 1)
	require.NotNil(t, err)
	require.Equal(t, engineerr.CodeInvalidElementKind, err.Code)
	require.Equal(t, 1, *err.OperationIndex)
}

func TestDecodeCreateElementRequiresTypeAndName(t *testing.T) {
	_, err := Decode("createElement", json.RawMessage(`{"name":"Alice"}`), 0)
	require.NotNil(t, err)
	require.Equal(t, engineerr.CodeValidationError, err.Code)
}

func TestDecodeCreateOrGetElementRejectsMismatchedMatch(t *testing.T) {
	raw := json.RawMessage(`{
		"create": {"type":"business-actor","name":"Alice"},
		"match": {"type":"business-actor","name":"Bob"}
	}`)
	_, err := Decode("createOrGetElement", raw, 2)
	require.NotNil(t, err)
	require.Equal(t, engineerr.CodeInvalidMatchSpecification, err.Code)
}

func TestDecodeCreateOrGetElementRejectsBadOnDuplicate(t *testing.T) {
	raw := json.RawMessage(`{
		"create": {"type":"business-actor","name":"Alice"},
		"match": {"type":"business-actor","name":"Alice"},
		"onDuplicate": "explode"
	}`)
	_, err := Decode("createOrGetElement", raw, 0)
	require.NotNil(t, err)
	require.Equal(t, engineerr.CodeInvalidDuplicateStrategy, err.Code)
}

func TestDecodeCreateOrGetElementAcceptsRenameStrategy(t *testing.T) {
	raw := json.RawMessage(`{
		"create": {"type":"business-actor","name":"Alice"},
		"match": {"type":"business-actor","name":"Alice"},
		"onDuplicate": "rename"
	}`)
	decoded, err := Decode("createOrGetElement", raw, 0)
	require.Nil(t, err)
	op := decoded.(*CreateOrGetElementOp)
	require.Equal(t, "rename", op.OnDuplicate)
}

func TestDecodeCreateOrGetRelationshipRejectsRenameStrategy(t *testing.T) {
	raw := json.RawMessage(`{
		"create": {"type":"flow-relationship","sourceId":"a","targetId":"b"},
		"match": {"type":"flow-relationship","sourceId":"a","targetId":"b"},
		"onDuplicate": "rename"
	}`)
	_, err := Decode("createOrGetRelationship", raw, 0)
	require.NotNil(t, err)
	require.Equal(t, engineerr.CodeInvalidDuplicateStrategy, err.Code)
}

func TestDecodeCreateRelationshipValidatesAccessAndStrength(t *testing.T) {
	raw := json.RawMessage(`{"type":"access-relationship","sourceId":"a","targetId":"b","accessType":"write"}`)
	decoded, err := Decode("createRelationship", raw, 0)
	require.Nil(t, err)
	op := decoded.(*CreateRelationshipOp)
	require.Equal(t, model.AccessWrite, op.AccessType)

	_, err = Decode("createRelationship", json.RawMessage(`{"type":"access-relationship","sourceId":"a","targetId":"b","accessType":"bogus"}`), 1)
	require.NotNil(t, err)
	require.Equal(t, engineerr.CodeValidationError, err.Code)
}

func TestDecodeDeleteElementDefaultsCascadeTrue(t *testing.T) {
	decoded, err := Decode("deleteElement", json.RawMessage(`{"id":"e1"}`), 0)
	require.Nil(t, err)
	op := decoded.(*DeleteElementOp)
	require.True(t, op.Cascade)

	decoded, err = Decode("deleteElement", json.RawMessage(`{"id":"e1","cascade":false}`), 0)
	require.Nil(t, err)
	require.False(t, decoded.(*DeleteElementOp).Cascade)
}

func TestDecodeDeleteElementRequiresID(t *testing.T) {
	_, err := Decode("deleteElement", json.RawMessage(`{}`), 0)
	require.NotNil(t, err)
	require.Equal(t, engineerr.CodeValidationError, err.Code)
}

func TestDecodeDeleteViewRequiresViewID(t *testing.T) {
	decoded, err := Decode("deleteView", json.RawMessage(`{"viewId":"v1"}`), 0)
	require.Nil(t, err)
	require.Equal(t, "v1", decoded.(*DeleteViewOp).ViewID)

	_, err = Decode("deleteView", json.RawMessage(`{}`), 0)
	require.NotNil(t, err)
}

func TestDecodeMalformedJSONReturnsValidationError(t *testing.T) {
	_, err := Decode("createElement", json.RawMessage(`not json`), 0)
	require.NotNil(t, err)
	require.Equal(t, engineerr.CodeValidationError, err.Code)
}
