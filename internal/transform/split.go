package transform

import (
	"regexp"
	"strings"
)

const brazilCountryCode = "55"

// phonePatterns recognizes +55 numbers: area code in group 1, the
// remaining groups concatenate into the subscriber number.
var phonePatterns = []string{
	`^\+55(\d{2})(\d{8,9})$`,
	`^\+55\s*\((\d{2})\)\s*(\d{4,5})-?(\d{4})$`,
	`^\+55\s+(\d{2})\s+(\d{4,5})-?(\d{4})$`,
	`^\+55-(\d{2})-(\d{4,5})-?(\d{4})$`,
}

var phoneRegexps = func() []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(phonePatterns))
	for i, expr := range phonePatterns {
		compiled[i] = regexp.MustCompile(expr)
	}

	return compiled
}()

// PhoneParts is the decomposition returned when no single part is requested.
type PhoneParts struct {
	CountryCode string
	AreaCode    string
	PhoneNumber string
}

// SplitPhone decomposes a Brazilian phone number. ok is false when none of
// the recognized formats match.
func SplitPhone(s string) (PhoneParts, bool) {
	s = strings.TrimSpace(s)
	for _, re := range phoneRegexps {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}

		return PhoneParts{
			CountryCode: brazilCountryCode,
			AreaCode:    m[1],
			PhoneNumber: strings.Join(m[2:], ""),
		}, true
	}

	return PhoneParts{}, false
}

func phoneSplit(value any, spec Spec) (any, bool) {
	s, ok := asText(value)
	if !ok {
		return nil, false
	}

	parts, ok := SplitPhone(s)
	if !ok {
		return nil, false
	}

	switch spec.Operation {
	case OpExtractAreaCode:
		return parts.AreaCode, true
	case OpExtractPhoneNumber:
		return parts.PhoneNumber, true
	case OpExtractCountryCode:
		return parts.CountryCode, true
	default:
		return map[string]any{
			"countryCode": parts.CountryCode,
			"areaCode":    parts.AreaCode,
			"phoneNumber": parts.PhoneNumber,
		}, true
	}
}

func nameSplit(value any, spec Spec) (any, bool) {
	s, ok := value.(string)
	if !ok {
		return nil, false
	}

	tokens := strings.Fields(s)

	var first string
	if len(tokens) > 0 {
		first = tokens[0]
	}

	var last string
	if len(tokens) > 1 {
		last = strings.Join(tokens[1:], " ")
	}

	switch spec.Operation {
	case OpSplitFirstName:
		return first, true
	case OpSplitLastName:
		return last, true
	default:
		return map[string]any{
			"firstName": first,
			"lastName":  last,
		}, true
	}
}
