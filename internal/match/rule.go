package match

import "hrbridge/internal/common"

// Rule identifies which matching rule produced a score.
type Rule int

const (
	RuleNone Rule = iota
	RuleExact
	RuleSemanticTag
	RuleSimilarName
	RuleHierarchical
	RulePartial
)

// String returns the rule's wire name.
func (r Rule) String() string {
	switch r {
	case RuleNone:
		return "none"
	case RuleExact:
		return "exact_match"
	case RuleSemanticTag:
		return "semantic_tag_match"
	case RuleSimilarName:
		return "similar_name"
	case RuleHierarchical:
		return "hierarchical_match"
	case RulePartial:
		return "partial_match"
	default:
		return common.UnknownStr
	}
}

// Scores assigns a score to every rule plus the minimum score a pair needs
// to become a mapping.
type Scores struct {
	Exact        float64 `mapstructure:"exact"`
	SemanticTag  float64 `mapstructure:"semantic_tag"`
	SimilarName  float64 `mapstructure:"similar_name"`
	Hierarchical float64 `mapstructure:"hierarchical"`
	Partial      float64 `mapstructure:"partial"`
	Threshold    float64 `mapstructure:"threshold"`
}

// DefaultScores returns the standard rule scores.
func DefaultScores() Scores {
	return Scores{
		Exact:        100,
		SemanticTag:  95,
		SimilarName:  85,
		Hierarchical: 80,
		Partial:      70,
		Threshold:    70,
	}
}

// For returns the score of a rule.
func (s Scores) For(r Rule) float64 {
	switch r {
	case RuleExact:
		return s.Exact
	case RuleSemanticTag:
		return s.SemanticTag
	case RuleSimilarName:
		return s.SimilarName
	case RuleHierarchical:
		return s.Hierarchical
	case RulePartial:
		return s.Partial
	default:
		return 0
	}
}

// Reasoning describes a score band.
func Reasoning(score float64) string {
	switch {
	case score >= 95:
		return "strong semantic match"
	case score >= 85:
		return "semantic pattern match"
	case score >= 80:
		return "hierarchical match"
	default:
		return "partial match"
	}
}
