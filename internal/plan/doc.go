// Package plan produces the mapping plan for one source/destination pair.
//
// Resolution pipeline:
//  1. Pinned mappings (hand-authored, e.g. from a mapping file) are taken
//     as is; their source fields and destination paths leave the pool.
//  2. The remaining destination paths go to the AI orchestrator when one
//     is configured.
//  3. When there is no AI service, or it fails outright, the rule-based
//     matcher maps the same pool and a warning records the fallback.
//  4. Transformed mappings get a preview computed from the source sample,
//     and destination paths left unmapped are listed.
package plan
