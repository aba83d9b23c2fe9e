package engine

// rewriteResults re-reads every result's realId against the committed model
// and overwrites its name field with the committed value, dropping any
// reliance on values captured mid-compile before later sub-commands (e.g. a
// rename from a later operation in the same plan) had run. Grounded on
// spec.md §4.7's result rewriter: "Fields never hold live object references
// by the time a client sees them — only committed ids and names."
func rewriteResults(ctx *CompileContext, results []OpResult) {
	for i := range results {
		r := &results[i]
		if id, ok := r.Fields["realId"].(string); ok {
			if e := ctx.Model.FindElement(id); e != nil {
				r.Fields["name"] = e.Name
			} else if rel := ctx.Model.FindRelationship(id); rel != nil {
				r.Fields["name"] = rel.Name
			} else if f := ctx.Model.FindFolder(id); f != nil {
				r.Fields["name"] = f.Name
			} else if v := ctx.Model.FindView(id); v != nil {
				r.Fields["name"] = v.Name
			}
		}
		// createRelationship's source/target element may be renamed by a
		// later same-plan updateElement; refresh the convenience name
		// fields the same way realId's name is refreshed above.
		if sourceID, ok := r.Fields["source"].(string); ok {
			if e := ctx.Model.FindElement(sourceID); e != nil {
				r.Fields["sourceName"] = e.Name
			}
		}
		if targetID, ok := r.Fields["target"].(string); ok {
			if e := ctx.Model.FindElement(targetID); e != nil {
				r.Fields["targetName"] = e.Name
			}
		}
	}
}
