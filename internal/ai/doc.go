// Package ai asks a generative model to propose field mappings.
//
// Small schemas are sent in one request. When either side has more leaf
// fields than BatchConfig.Threshold the destination is split into batches
// whose size adapts to how the service behaves: it grows after a run of
// successes, shrinks after a failure, and a range that still fails at the
// floor size is skipped so every run terminates. Responses that are cut off
// or malformed are handed to package salvage before a batch is counted as
// failed.
//
// Generate reports total failure as an error; callers fall back to the
// rule-based matcher.
package ai
