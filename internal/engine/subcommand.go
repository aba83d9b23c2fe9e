// Package engine implements spec.md §4.3, §4.6 and §4.7: the sub-command
// factory, the three-pass batch compiler, chunking and post-chunk
// verification, and the result rewriter. Grounded on the teacher's
// internal/validation package for the named-function-as-interface idiom
// (ValidatorFunc) applied here to apply/revert closures, and on
// internal/tools/workflow's one-file-per-tool layout applied to the
// lower_*.go files of this package, one per operation family.
package engine

// SubCommand is one atomic, undoable step of spec.md §4.3: applying it
// transforms the model from state S to S'; Revert must restore S exactly.
// Apply and Revert are closures. Folder installs look their folder up by
// id when they run; visual and connection sub-commands hold pointers to
// the nodes they mutate, which the compiler allocates before any
// sub-command runs.
type SubCommand struct {
	Label  string
	Apply  func() error
	Revert func() error
}

// Transaction is the unit the host command stack commits or rolls back as
// one undo entry (spec.md §4.6 "Chunking").
type Transaction struct {
	Label   string
	Entries []SubCommand
}
