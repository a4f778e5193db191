// Package remoteconfig provides a typed, validated view of the remote
// key-value configuration store that drives ad insertion.
//
// Raw values arrive as strings of unknown quality. They are coerced and
// validated exactly once, when a snapshot is refreshed — consumers always
// receive a strongly typed Schema and never re-parse values per call. A
// snapshot that cannot be refreshed is served stale rather than failing
// rendering.
package remoteconfig
