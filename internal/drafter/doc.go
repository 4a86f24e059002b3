// Package drafter runs one changelog update: it categorizes the commits,
// resolves the next version, loads the changelog and the diff concurrently,
// requests an entry from the generator, and splices it into the changelog.
//
// Each run moves through a small state machine:
//
//	NOT_STARTED -> NO_COMMITS
//	NOT_STARTED -> ANALYZED -> REQUESTED -> NO_UPDATE_NEEDED | UPDATED
//	any state   -> ERROR
//
// Runs against the same changelog must be serialized by the caller.
package drafter
