package input

// Key-name resolution for the per-key typing path. The table covers the
// printable ASCII range; anything outside it is reported unmappable and the
// caller decides whether to drop or reroute it.

var namedKeys = map[rune]string{
	' ':  "space",
	'\n': "enter",
	'\t': "tab",
}

// shiftedKeys maps shifted US-layout symbols to their base key.
var shiftedKeys = map[rune]rune{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
	'_': '-', '+': '=', '{': '[', '}': ']', '|': '\\',
	':': ';', '"': '\'', '<': ',', '>': '.', '?': '/',
	'~': '`',
}

// plainKeys are tappable as-is.
const plainKeys = "abcdefghijklmnopqrstuvwxyz0123456789-=[]\\;',./`"

// asciiKey resolves a rune to a tappable key name and whether shift must be
// held. ok is false when the rune has no mapping.
func asciiKey(r rune) (key string, shift bool, ok bool) {
	if name, found := namedKeys[r]; found {
		return name, false, true
	}
	if r >= 'A' && r <= 'Z' {
		return string(r - 'A' + 'a'), true, true
	}
	if base, found := shiftedKeys[r]; found {
		return string(base), true, true
	}
	for _, p := range plainKeys {
		if r == p {
			return string(r), false, true
		}
	}
	return "", false, false
}
