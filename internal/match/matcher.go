package match

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"hrbridge/internal/analyze"
	"hrbridge/internal/common"
	"hrbridge/internal/mapping"
)

// minPartialLen is the shortest normalized name the partial rule accepts as
// a substring, so "id" does not match every "*id" field.
const minPartialLen = 3

// Config tunes a Matcher.
type Config struct {
	Scores Scores `mapstructure:",squash"`
	// UniqueTargets additionally keeps at most one mapping per destination
	// path.
	UniqueTargets bool `mapstructure:"unique_targets"`
}

// DefaultConfig returns the standard matcher configuration.
func DefaultConfig() Config {
	return Config{Scores: DefaultScores()}
}

// Matcher scores source fields against destination paths.
type Matcher struct {
	cfg Config
	log *zap.Logger
}

// NewMatcher creates a Matcher. A nil logger disables logging.
func NewMatcher(cfg Config, log *zap.Logger) *Matcher {
	if log == nil {
		log = zap.NewNop()
	}

	return &Matcher{cfg: cfg, log: log}
}

// Candidate is a scored (source, destination) pair.
type Candidate struct {
	Source     analyze.Field
	TargetPath string
	Rule       Rule
	Score      float64
	// NameScore is the normalized Levenshtein similarity of the leaf names,
	// used to order equal scores.
	NameScore float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then name similarity descending, then source
// path and target path for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	if c[i].NameScore != c[j].NameScore {
		return c[i].NameScore > c[j].NameScore
	}

	if c[i].Source.Path != c[j].Source.Path {
		return c[i].Source.Path < c[j].Source.Path
	}

	return c[i].TargetPath < c[j].TargetPath
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// ruleIndex holds rules with every name already normalized.
type ruleIndex struct {
	groups     [][]string          // synonym groups, sorted by group name
	categories []categoryIndex     // sorted by category name
	tags       map[string][]string // source path -> extra tags
}

type categoryIndex struct {
	containers []string
	fields     []string
}

func indexRules(rules mapping.SemanticRules) ruleIndex {
	idx := ruleIndex{tags: rules.Tags}

	for _, name := range sortedKeys(rules.SynonymGroups) {
		idx.groups = append(idx.groups, normalizeAll(rules.SynonymGroups[name]))
	}

	for _, name := range sortedKeys(rules.Categories) {
		c := rules.Categories[name]
		idx.categories = append(idx.categories, categoryIndex{
			containers: normalizeAll(c.Containers),
			fields:     normalizeAll(c.Fields),
		})
	}

	return idx
}

// Candidates scores every pair and returns those at or above the threshold,
// ranked.
func (m *Matcher) Candidates(
	source []analyze.Field,
	destinationPaths []string,
	rules mapping.SemanticRules,
) CandidateList {
	idx := indexRules(rules)

	var candidates CandidateList

	for _, src := range source {
		srcName := NormalizeIdent(src.Name)
		srcTokens := PathTokens(src.Path)
		tags := normalizeAll(append(slices.Clone(src.Tags), idx.tags[src.Path]...))

		for _, dst := range destinationPaths {
			dstName := NormalizeIdent(common.LeafName(dst))
			if srcName == "" || dstName == "" {
				continue
			}

			rule := idx.rule(srcName, srcTokens, tags, dstName, PathTokens(dst))

			score := m.cfg.Scores.For(rule)
			if rule == RuleNone || score < m.cfg.Scores.Threshold {
				continue
			}

			candidates = append(candidates, Candidate{
				Source:     src,
				TargetPath: dst,
				Rule:       rule,
				Score:      score,
				NameScore:  LevenshteinNormalized(srcName, dstName),
			})
		}
	}

	sort.Sort(candidates)

	return candidates
}

// Match returns at most one mapping per source field, best first.
func (m *Matcher) Match(
	source []analyze.Field,
	destinationPaths []string,
	rules mapping.SemanticRules,
) []mapping.Mapping {
	candidates := m.Candidates(source, destinationPaths, rules)

	picked := common.UniqueBy(candidates, func(c Candidate) string { return c.Source.Path })
	if m.cfg.UniqueTargets {
		picked = common.UniqueBy(picked, func(c Candidate) string { return c.TargetPath })
	}

	mappings := make([]mapping.Mapping, 0, len(picked))
	for _, c := range picked {
		mappings = append(mappings, mapping.Mapping{
			ID:          mapping.ID(c.Source.Path, c.TargetPath),
			SourceField: c.Source.Ref(),
			TargetPath:  c.TargetPath,
			Reasoning:   Reasoning(c.Score),
		}.WithConfidence(mapping.NormalizeConfidence(c.Score)))
	}

	m.log.Debug("rule-based matching finished",
		zap.Int("source_fields", len(source)),
		zap.Int("destination_paths", len(destinationPaths)),
		zap.Int("candidates", len(candidates)),
		zap.Int("mappings", len(mappings)))

	return mappings
}

// rule returns the first rule that fires for the pair.
func (idx ruleIndex) rule(srcName string, srcPath, tags []string, dstName string, dstPath []string) Rule {
	switch {
	case srcName == dstName:
		return RuleExact
	case matchesTag(dstName, tags):
		return RuleSemanticTag
	case idx.sameGroup(srcName, dstName):
		return RuleSimilarName
	case idx.sameCategory(srcName, srcPath, dstName, dstPath):
		return RuleHierarchical
	case isPartial(srcName, dstName):
		return RulePartial
	default:
		return RuleNone
	}
}

func matchesTag(dstName string, tags []string) bool {
	for _, tag := range tags {
		if tag == "" {
			continue
		}

		if strings.Contains(tag, dstName) || strings.Contains(dstName, tag) {
			return true
		}
	}

	return false
}

func (idx ruleIndex) sameGroup(a, b string) bool {
	for _, group := range idx.groups {
		if slices.Contains(group, a) && slices.Contains(group, b) {
			return true
		}
	}

	return false
}

func (idx ruleIndex) sameCategory(srcName string, srcPath []string, dstName string, dstPath []string) bool {
	for _, c := range idx.categories {
		if !slices.Contains(c.fields, srcName) || !slices.Contains(c.fields, dstName) {
			continue
		}

		if hasContainer(srcPath, c.containers) && hasContainer(dstPath, c.containers) {
			return true
		}
	}

	return false
}

// hasContainer reports whether any non-leaf segment is one of containers.
func hasContainer(path, containers []string) bool {
	if len(path) < 2 {
		return false
	}

	for _, seg := range path[:len(path)-1] {
		if slices.Contains(containers, seg) {
			return true
		}
	}

	return false
}

func isPartial(a, b string) bool {
	if utf8.RuneCountInString(a) > utf8.RuneCountInString(b) {
		a, b = b, a
	}

	return utf8.RuneCountInString(a) >= minPartialLen && strings.Contains(b, a)
}

func normalizeAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if norm := NormalizeIdent(n); norm != "" {
			out = append(out, norm)
		}
	}

	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
