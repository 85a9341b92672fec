// Package hydrate composes independently defined asynchronous fetch
// operations, arranged as a single-rooted tree of named nodes, into one
// composite result document.
//
// Each node's operation depends only on the resolved output of its immediate
// parent, never on the accumulated result, so the same operation can be
// reused under unrelated trees. Callers select the branches they need before
// triggering execution; only selected nodes (and the ancestors connecting
// them to the root) run.
//
//	root := hydrate.NewNode("movie", fetchMovie)
//	cast := root.Child("cast", fetchCast)
//	progress := root.Child("progress", fetchProgress)
//
//	b, err := hydrate.New(root, cast, progress)
//	result, err := b.Select(progress).Run(ctx, movieID)
//
// Execution is breadth-first: the root runs first with the caller input, then
// each layer runs every selected node whose parent just resolved, with
// maximum concurrency within the layer. The first failing operation aborts
// the run and its error is returned unmodified; siblings are not cancelled
// but their results are discarded.
//
// Selection is sticky by design: it accumulates across Select calls and
// persists between runs, so a builder configured once can serve repeated,
// cheaper follow-up runs. Reset discards selections explicitly.
package hydrate
