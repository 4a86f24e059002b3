// Package commits turns the pipe-delimited commit listing produced by CI into
// structured records and sorts them into conventional-commit categories.
//
// Both operations are pure: they never touch the file system or git, so the
// caller decides where the listing comes from (a pre-populated file or the
// collect command).
package commits
