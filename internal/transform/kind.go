package transform

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind identifies a transformation. KindUnknown is the explicit branch for
// wire names this build does not support.
type Kind int

const (
	KindUnknown Kind = iota

	KindFormatDocument
	KindConcat
	KindPhoneSplit
	KindNameSplit
	KindConvert
	KindNormalize
	KindFormatDate
	KindCountryCode
	KindGenderCode
	KindCodeLookup

	// KindTotal is the number of kinds including KindUnknown.
	KindTotal = int(iota)
)

var wireNames = [KindTotal]string{
	KindUnknown:        "",
	KindFormatDocument: "format_document",
	KindConcat:         "concat",
	KindPhoneSplit:     "phone_split",
	KindNameSplit:      "name_split",
	KindConvert:        "convert",
	KindNormalize:      "normalize",
	KindFormatDate:     "format_date",
	KindCountryCode:    "country_code",
	KindGenderCode:     "gender_code",
	KindCodeLookup:     "code_lookup",
}

// Name returns the wire name of the kind ("format_document", ...).
func (k Kind) Name() string {
	if k < 0 || int(k) >= KindTotal {
		return ""
	}

	return wireNames[k]
}

// IsKnown reports whether the kind has an entry in the dispatch table.
func (k Kind) IsKnown() bool {
	return k > KindUnknown && int(k) < KindTotal
}

// ParseKind resolves a wire name. Unrecognized names yield KindUnknown.
func ParseKind(name string) Kind {
	if name == "" {
		return KindUnknown
	}

	for k := KindUnknown + 1; int(k) < KindTotal; k++ {
		if wireNames[k] == name {
			return k
		}
	}

	return KindUnknown
}

// Kinds returns every supported kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, KindTotal-1)
	for k := KindUnknown + 1; int(k) < KindTotal; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}
