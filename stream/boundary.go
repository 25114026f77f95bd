package stream

import "github.com/aledsdavies/fjson/options"

// ScanBoundary looks for the end of exactly one top-level value starting
// at buf[start:], tracking only what's needed to find a safe hand-off
// point: string/comment state (so a brace inside a string or a comment
// never perturbs depth) and bracket depth. It does not validate grammar;
// that's the job of the parser the engine hands the resulting slice to.
//
// ok is true when a complete value was found; end is the offset one past
// its last byte. A bare top-level scalar (depth never went above 0) ends
// at the first whitespace, comma or line comment after it; one that runs
// to the end of buf is reported as incomplete (ok false), since more
// bytes may still extend it.
func ScanBoundary(buf []byte, start int, opts options.Options) (end int, ok bool) {
	i := start
	depth := 0
	sawContainer := false
	sawAnyContent := false

	for i < len(buf) {
		c := buf[i]

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f' || c == ',':
			if sawAnyContent && depth == 0 {
				// A whitespace/newline run after a completed bare scalar
				// or closed container terminates it.
				return i, true
			}
			i++

		case opts.AllowComments && c == '/' && i+1 < len(buf) && buf[i+1] == '/':
			if sawAnyContent && depth == 0 {
				return i, true
			}
			i += 2
			for i < len(buf) && buf[i] != '\n' {
				i++
			}

		case opts.AllowComments && c == '#':
			if sawAnyContent && depth == 0 {
				return i, true
			}
			i++
			for i < len(buf) && buf[i] != '\n' {
				i++
			}

		case opts.AllowComments && c == '/' && i+1 < len(buf) && buf[i+1] == '*':
			i += 2
			for {
				if i+1 >= len(buf) {
					return 0, false // unterminated block comment: need more data
				}
				if buf[i] == '*' && buf[i+1] == '/' {
					i += 2
					break
				}
				i++
			}
			sawAnyContent = true

		case c == '"' || (opts.AllowSingleQuotes && c == '\''):
			quote := c
			i++
			for {
				if i >= len(buf) {
					return 0, false // unterminated string: need more data
				}
				if buf[i] == '\\' {
					i += 2
					continue
				}
				if buf[i] == quote {
					i++
					break
				}
				i++
			}
			sawAnyContent = true
			if depth == 0 {
				return i, true
			}

		case c == '{' || c == '[':
			depth++
			sawContainer = true
			sawAnyContent = true
			i++

		case c == '}' || c == ']':
			depth--
			i++
			if depth == 0 && sawContainer {
				return i, true
			}
			if depth < 0 {
				return i, true // let the parser raise BracketMismatch
			}

		default:
			sawAnyContent = true
			i++
			if depth == 0 {
				// A bare scalar/ident/number run: keep consuming until a
				// byte that can't extend it, then let the outer whitespace
				// or structural-byte cases above close it out.
				for i < len(buf) {
					b := buf[i]
					if b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f' ||
						b == ',' || b == '}' || b == ']' || b == '"' || b == '\'' {
						break
					}
					i++
				}
			}
		}
	}

	if sawAnyContent && depth == 0 && !sawContainer {
		return 0, false // bare scalar with no trailing terminator yet: need more data (or finish())
	}
	return 0, false
}
