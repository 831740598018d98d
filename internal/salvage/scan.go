package salvage

// scanner tracks string and escape state while walking JSON-ish text.
type scanner struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it is structural, i.e. outside any
// string literal.
func (s *scanner) step(c byte) bool {
	if s.inString {
		switch {
		case s.escaped:
			s.escaped = false
		case c == '\\':
			s.escaped = true
		case c == '"':
			s.inString = false
		}

		return false
	}

	if c == '"' {
		s.inString = true
		return false
	}

	return true
}
