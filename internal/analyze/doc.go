// Package analyze flattens JSON documents into leaf fields.
//
// Two document shapes are understood:
//   - JSON Schema: nested "properties" objects; every property without
//     properties of its own is a leaf. Semantic tags are read from
//     "x-semantic-tags", "semanticTags" or "tags"; a sample from "example",
//     "examples" or "default".
//   - Payload: a plain JSON object; every non-object value (and every empty
//     object) is a leaf whose sample is the value itself.
//
// Documents read from bytes keep their key order. In-memory maps are walked
// in sorted key order.
//
// Key types:
//   - Field: one leaf with its dotted path, kind, tags and sample
//   - Schema: the ordered leaf list with lookup by path
package analyze
