// Package paging turns a server-driven sequence of pages into one lazily
// advancing stream.
//
// The service decides page size and hands back an opaque continuation with
// every page that has a successor. The stream issues the initial query once,
// then follows each continuation exactly as received, one fetch per advance,
// and never fetches ahead of its consumer. Items are exposed as standard
// iter.Seq2 sequences.
package paging
