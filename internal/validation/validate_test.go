package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archimate-engine/batchmut/internal/engineerr"
	"github.com/archimate-engine/batchmut/internal/model"
	"github.com/archimate-engine/batchmut/internal/validation/ops"
)

func TestValidatePlanRejectsEmptyChanges(t *testing.T) {
	_, err := ValidatePlan([]byte(`{"changes": []}`), model.NewModel(), DefaultConfig())
	require.NotNil(t, err)
	assert.Equal(t, engineerr.CodeValidationError, err.Code)
}

func TestValidatePlanRejectsMalformedIdempotencyKey(t *testing.T) {
	plan := `{"changes": [{"op":"createElement","type":"business-actor","name":"A"}], "idempotencyKey": "bad key!"}`
	_, err := ValidatePlan([]byte(plan), model.NewModel(), DefaultConfig())
	require.NotNil(t, err)
	assert.Equal(t, engineerr.CodeValidationError, err.Code)
}

func TestValidatePlanRejectsUnknownTag(t *testing.T) {
	plan := `{"changes": [{"op":"frobnicate"}]}`
	_, err := ValidatePlan([]byte(plan), model.NewModel(), DefaultConfig())
	require.NotNil(t, err)
}

func TestValidatePlanNormalizesKindAndSucceeds(t *testing.T) {
	plan := `{"changes": [{"op":"createElement","type":"BusinessActor","name":"Finance"}]}`
	validated, err := ValidatePlan([]byte(plan), model.NewModel(), DefaultConfig())
	require.Nil(t, err)
	require.Len(t, validated.Ops, 1)
	created := validated.Ops[0].Decoded.(*ops.CreateElementOp)
	assert.Equal(t, "business-actor", created.Type)
}

func TestValidatePlanRejectsDuplicateElementUnderErrorStrategy(t *testing.T) {
	m := model.NewModel()
	var businessFolder *model.Folder
	for _, id := range m.RootFolderIDs {
		if m.Folders[id].Kind == model.FolderBusiness {
			businessFolder = m.Folders[id]
		}
	}
	existing := &model.Element{ID: model.NewID(), Kind: "business-actor", Name: "Finance", ParentFolder: businessFolder.ID}
	m.Elements[existing.ID] = existing
	businessFolder.AddElement(existing.ID)

	plan := `{"changes": [{"op":"createElement","type":"business-actor","name":"Finance"}]}`
	_, err := ValidatePlan([]byte(plan), m, DefaultConfig())
	require.NotNil(t, err)
	assert.Equal(t, engineerr.CodeDuplicateElement, err.Code)
}

func TestValidatePlanRejectsPlanOverMaxChanges(t *testing.T) {
	plan := `{"changes": [{"op":"createElement","type":"business-actor","name":"A"},{"op":"createElement","type":"business-actor","name":"B"}]}`
	cfg := Config{MaxChanges: 1}
	_, err := ValidatePlan([]byte(plan), model.NewModel(), cfg)
	require.NotNil(t, err)
	assert.Equal(t, engineerr.CodeValidationError, err.Code)
}

func TestValidatePlanUpsertInvalidMatchSpecification(t *testing.T) {
	plan := `{"changes": [{"op":"createOrGetElement","create":{"type":"business-actor","name":"A"},"match":{"type":"business-actor","name":"B"}}]}`
	_, err := ValidatePlan([]byte(plan), model.NewModel(), DefaultConfig())
	require.NotNil(t, err)
	assert.Equal(t, engineerr.CodeInvalidMatchSpecification, err.Code)
}
