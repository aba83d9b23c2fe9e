package ops

import (
	"encoding/json"

	"github.com/archimate-engine/batchmut/internal/engineerr"
)

// decoder parses and schema-validates one operation's raw bytes, returning
// the tag-specific struct as `any` (one of the *Op types declared in this
// package) ready for ValidatedOp.Decoded.
type decoder func(raw json.RawMessage, index int) (any, *engineerr.Error)

func adapt[T any](fn func(json.RawMessage, int) (*T, *engineerr.Error)) decoder {
	return func(raw json.RawMessage, index int) (any, *engineerr.Error) {
		decoded, err := fn(raw, index)
		if err != nil {
			return nil, err
		}
		return decoded, nil
	}
}

// registry maps every wire operation tag to its decoder. A tag absent from
// this map is, by construction, not a member of the closed operation set —
// Decode reports it as ValidationError rather than silently accepting it.
var registry = map[string]decoder{
	"createElement":            adapt(decodeCreateElement),
	"createOrGetElement":       adapt(decodeCreateOrGetElement),
	"createRelationship":       adapt(decodeCreateRelationship),
	"createOrGetRelationship":  adapt(decodeCreateOrGetRelationship),
	"setProperty":              adapt(decodeSetProperty),
	"updateElement":            adapt(decodeUpdateElement),
	"updateRelationship":       adapt(decodeUpdateRelationship),
	"deleteElement":            adapt(decodeDeleteElement),
	"deleteRelationship":       adapt(decodeDeleteRelationship),
	"moveToFolder":             adapt(decodeMoveToFolder),
	"createFolder":             adapt(decodeCreateFolder),
	"createView":               adapt(decodeCreateView),
	"deleteView":               adapt(decodeDeleteView),
	"duplicateView":            adapt(decodeDuplicateView),
	"setViewRouter":            adapt(decodeSetViewRouter),
	"layoutView":               adapt(decodeLayoutView),
	"addToView":                adapt(decodeAddToView),
	"nestInView":               adapt(decodeNestInView),
	"addConnectionToView":      adapt(decodeAddConnectionToView),
	"deleteConnectionFromView": adapt(decodeDeleteConnectionFromView),
	"styleViewObject":          adapt(decodeStyleViewObject),
	"styleConnection":          adapt(decodeStyleConnection),
	"moveViewObject":           adapt(decodeMoveViewObject),
	"createNote":               adapt(decodeCreateNote),
	"createGroup":              adapt(decodeCreateGroup),
}

// Decode dispatches one plan entry's raw bytes to its tag-specific decoder.
func Decode(tag string, raw json.RawMessage, index int) (any, *engineerr.Error) {
	fn, ok := registry[tag]
	if !ok {
		return nil, engineerr.At(engineerr.CodeValidationError, index, "unknown operation tag "+tag)
	}
	return fn(raw, index)
}
