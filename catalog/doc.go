// Package catalog turns YAML tree definitions into runnable hydration
// builders.
//
// A definition names a tree and its nodes; each node's fetch step is either
// a registered operation or an inline HTTP source:
//
//	name: movie
//	nodes:
//	  - name: movie
//	    operation: fetch-movie
//	  - name: cast
//	    parent: movie
//	    source:
//	      url: https://api.example.com/movies/{input.id}/cast
//	      timeout: 5s
//
// Definitions are loaded from disk, validated, and stored:
//
//	registry := catalog.NewRegistry()
//	registry.Register("fetch-movie", fetchMovie)
//
//	cat := catalog.New(registry).WithLogger(log)
//	defs, err := catalog.NewFileLoader("trees").LoadAll()
//	for _, def := range defs {
//	    if err := cat.Add(def); err != nil { ... }
//	}
//
// Build produces a fresh Builder per call, so a server can select and run
// per request without sharing state:
//
//	b, err := cat.Build("movie")
//	b.SelectNames("cast")
//	result, err := b.Run(ctx, map[string]any{"id": 603})
package catalog
