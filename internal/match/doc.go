// Package match is the rule-based mapper used when no AI service is
// available.
//
// Every source leaf is scored against every destination path by the first
// rule that fires, highest priority first:
//
//	exact         leaf names equal after normalization          100
//	semantic_tag  destination leaf contains / is in a source tag  95
//	similar_name  both leaf names in one synonym group            85
//	hierarchical  both paths under containers of one category
//	              and both leaves in that category's fields       80
//	partial       one normalized leaf name contains the other     70
//
// Pairs below the threshold (70) are dropped. The rest are ordered by score,
// then name similarity, then source and target path, and each source field
// keeps only its best pair. Matching is pure and deterministic.
package match
