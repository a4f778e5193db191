// Package admincache caches per-user admin status behind a checker
// function. Lookups within the TTL are served from an LRU cache; on a
// checker failure the stale cached value is served rather than failing
// the request.
package admincache
