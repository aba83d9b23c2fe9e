package engine

import "github.com/archimate-engine/batchmut/internal/model"

// SetScalarFeature builds a set-scalar-feature sub-command (spec.md §4.3):
// apply writes get()'s current value aside and calls set(newValue); revert
// restores the remembered value. get/set close over the target object by
// reference (a *model.Element, *model.VisualNode, ...) rather than by
// value, so repeated apply/revert cycles always touch the live object.
func SetScalarFeature[T any](label string, get func() T, set func(T), newValue T) SubCommand {
	var old T
	return SubCommand{
		Label: label,
		Apply: func() error {
			old = get()
			set(newValue)
			return nil
		},
		Revert: func() error {
			set(old)
			return nil
		},
	}
}

// AddToOrderedList builds an add-to-ordered-list sub-command. add/remove
// are supplied by the caller and run at apply/revert time. Folder callers
// look the folder up by id inside add/remove; visual and connection callers
// close over node pointers that the compiler allocated when it built the
// sub-command.
func AddToOrderedList(label string, add func(), remove func()) SubCommand {
	return SubCommand{
		Label:  label,
		Apply:  func() error { add(); return nil },
		Revert: func() error { remove(); return nil },
	}
}

// RemoveFromOrderedList builds a remove-from-ordered-list sub-command: the
// inverse of AddToOrderedList, used directly by Pass 3 deletes. remove must
// remember whatever its revert (reinsert) needs — typically the original
// index — in its own closure state.
func RemoveFromOrderedList(label string, remove func(), reinsert func()) SubCommand {
	return SubCommand{
		Label:  label,
		Apply:  func() error { remove(); return nil },
		Revert: func() error { reinsert(); return nil },
	}
}

// SetBounds builds a set-bounds sub-command for a visual node.
func SetBounds(label string, visual *model.VisualNode, newBounds model.Bounds) SubCommand {
	var old model.Bounds
	return SubCommand{
		Label: label,
		Apply: func() error {
			old = visual.Bounds
			visual.Bounds = newBounds
			return nil
		},
		Revert: func() error {
			visual.Bounds = old
			return nil
		},
	}
}

// ReplaceBounds is spec.md §4.3's "as above, used atomically during
// re-parenting" variant — same apply/revert shape as SetBounds, named
// separately because nestInView always pairs it with a reparent pair of
// add/remove sub-commands within the same transaction.
func ReplaceBounds(label string, visual *model.VisualNode, newBounds model.Bounds) SubCommand {
	return SetBounds(label, visual, newBounds)
}
