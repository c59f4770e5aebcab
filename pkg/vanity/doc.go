// Package vanity searches, in parallel, for a key pair whose public identifier starts with a
// chosen prefix, and records the first match exactly once.
//
// # Quick Start
//
//	import (
//	    "github.com/mahdiidarabi/vanity-keygen/pkg/keygen"
//	    "github.com/mahdiidarabi/vanity-keygen/pkg/vanity"
//	)
//
//	// out is any vanity.Store; the vanity command uses CSV and SQLite stores.
//	client := vanity.NewClient().
//	    WithGenerator(keygen.NewEd25519(nil)).
//	    WithStore(out)
//
//	result, err := client.Search(ctx, vanity.SearchConfig{
//	    Pattern:       "abc",
//	    CaseSensitive: false,
//	    Workers:       8,
//	})
//
// # How a search runs
//
// A Coordinator moves through three states. While Idle it validates the configuration and
// prepares the store. Running, it starts one goroutine per worker, a progress reporter and a
// result sink. Done is reached once every goroutine has returned.
//
// Workers share a SharedState: a stop flag and an examined counter, both plain atomics. The
// first worker whose candidate matches wins a compare-and-swap on the stop flag and hands the
// record to the sink, whose single writer goroutine owns the store. Everyone else sees the
// flag and exits. Cancelling the context raises the same flag.
//
// # Custom Generators
//
// Implement the KeyGenerator interface to search over other key schemes:
//
//	type MyGenerator struct{}
//
//	func (g *MyGenerator) Generate() (vanity.Candidate, error) {
//	    // create a key pair and encode its public half
//	}
//
//	func (g *MyGenerator) Name() string {
//	    return "MyScheme"
//	}
package vanity
