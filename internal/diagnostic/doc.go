// Package diagnostic provides structured warnings, errors, and infos
// attached to mapping plans and compiled integrations.
//
// Key capabilities:
//   - AI fallback warnings
//   - Coverage gaps left by skipped batches
//   - Unknown transformation kinds compiled as passthrough
//   - Target path collisions
package diagnostic
