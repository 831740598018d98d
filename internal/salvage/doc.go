// Package salvage recovers mapping records from model output that may be
// wrapped in prose, cut off mid-record, or partly corrupted.
//
// Recovery runs in two phases and the first that yields records wins:
//
//  1. Trim to the last comma between two top-level array elements, close
//     the array and parse. This recovers every complete record of a cleanly
//     truncated response.
//  2. Scan the text for balanced {...} regions and parse each on its own,
//     keeping those that name both a source field and a target path.
//
// Nothing in this package panics or returns an error; the worst case is an
// empty result.
package salvage
