package engine

import (
	"fmt"

	"github.com/archimate-engine/batchmut/internal/engineerr"
)

// maxMissingIDsReported bounds SilentRollback's missing-id prefix (spec.md
// §4.6: "carrying counts and a prefix of missing ids").
const maxMissingIDsReported = 10

// verifyCommitted calls find_element/find_relationship for every id seen so
// far in ctx.CreatedElementIDs/CreatedRelationshipIDs (spec.md §4.6
// "Verification"). A missing id is silent rollback by the command stack —
// fatal for the plan, never masked.
func verifyCommitted(ctx *CompileContext) *engineerr.Error {
	var missing []string
	for _, id := range ctx.CreatedElementIDs {
		if ctx.Model.FindElement(id) == nil {
			missing = append(missing, id)
		}
	}
	for _, id := range ctx.CreatedRelationshipIDs {
		if ctx.Model.FindRelationship(id) == nil {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	prefix := missing
	if len(prefix) > maxMissingIDsReported {
		prefix = prefix[:maxMissingIDsReported]
	}
	return engineerr.New(engineerr.CodeSilentRollback,
		fmt.Sprintf("%d of %d created ids missing after commit", len(missing),
			len(ctx.CreatedElementIDs)+len(ctx.CreatedRelationshipIDs))).
		WithDetails(map[string]any{
			"missingCount":  len(missing),
			"missingPrefix": prefix,
		})
}
