// Package adfeed computes render plans that interleave sponsored ad slots
// into ordered content lists.
//
// Interleave is a pure function: for a fixed item list and config it returns
// the same plan on every call, holds no internal counters, and never mutates
// its inputs. This keeps paginated tab views deterministic and lets callers
// re-render freely.
package adfeed
