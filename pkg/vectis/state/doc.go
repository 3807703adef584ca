/*
Package state is the POS application state store: one tree of nested
map[string]any containers addressed by dot-separated paths, with exact-path
subscriptions and a bounded undo history.

# Mutations

Every mutation follows the same order:

 1. snapshot the pre-mutation tree into history (deep copy),
 2. apply the change,
 3. notify listeners subscribed to the mutated path,
 4. notify wildcard ("*") listeners.

SetPath writes one leaf and creates missing intermediate containers.
MergePatch shallow-merges top-level keys; listeners of each patched key are
notified in key order before the wildcard pass.

	store := state.New(nil, state.WithDefaults(pos.DefaultState))
	unsubscribe := store.Subscribe(state.PathCart, func(ch state.Change) error {
	    render(ch.Current)
	    return nil
	})
	defer unsubscribe()

	_ = store.SetPath(state.PathSearchQuery, "pizza")
	store.Undo()

# Values

Get returns live values. Callers that need to modify a container must copy it
first and write the copy back with SetPath; types stored in the tree should
implement Cloner so that history snapshots are independent of later edits.

# Failure isolation

A listener that returns an error or panics is logged and counted; the remaining
listeners still run and the caller of SetPath never sees the failure.

Listeners run synchronously on the caller's goroutine with no lock held, so a
listener may itself call SetPath. Each such call takes its own snapshot and runs
its own notification pass.
*/
package state
