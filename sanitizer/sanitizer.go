// FILE: lixenwraith/sawlog/sanitizer/sanitizer.go
// Package sanitizer neutralises runes in log message text that would break the
// one-record-per-line layout or inject terminal control sequences.
package sanitizer

import (
	"encoding/hex"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Filter flags for character matching
const (
	FilterNonPrintable uint64 = 1 << iota // Matches runes not classified as printable by strconv.IsPrint
	FilterControl                         // Matches control characters (unicode.IsControl)
	FilterEscape                          // Matches the ESC rune that starts ANSI sequences
	FilterLineBreak                       // Matches '\n', '\r' and the Unicode line/paragraph separators
)

// Transform flags for character transformation
const (
	TransformStrip     uint64 = 1 << iota // Removes the character
	TransformHexEncode                    // Encodes the character's UTF-8 bytes as "<xx>"
	TransformEscape                       // Backslash escape ('\n', '\t', '\x1b')
)

// PolicyPreset defines pre-configured sanitization policies
type PolicyPreset string

const (
	PolicyRaw    PolicyPreset = "raw"    // Passthrough
	PolicyTxt    PolicyPreset = "txt"    // Hex-encode everything not printable
	PolicyStrip  PolicyPreset = "strip"  // Drop control runes
	PolicyEscape PolicyPreset = "escape" // Backslash escape control runes
)

// rule represents a single sanitization rule
type rule struct {
	filter    uint64
	transform uint64
}

var policyRules = map[PolicyPreset][]rule{
	PolicyRaw:    {},
	PolicyTxt:    {{filter: FilterNonPrintable, transform: TransformHexEncode}},
	PolicyStrip:  {{filter: FilterControl | FilterEscape | FilterLineBreak, transform: TransformStrip}},
	PolicyEscape: {{filter: FilterControl | FilterLineBreak, transform: TransformEscape}},
}

// filterChecker pairs a flag with its predicate; a slice keeps evaluation order stable
type filterChecker struct {
	flag  uint64
	check func(rune) bool
}

var filterCheckers = []filterChecker{
	{FilterNonPrintable, func(r rune) bool { return !strconv.IsPrint(r) }},
	{FilterControl, unicode.IsControl},
	{FilterEscape, func(r rune) bool { return r == 0x1b }},
	{FilterLineBreak, func(r rune) bool {
		return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
	}},
}

// Sanitizer provides chainable text sanitization.
// It reuses an internal buffer and is not safe for concurrent use.
type Sanitizer struct {
	rules []rule
	buf   []byte
}

// New creates a passthrough Sanitizer
func New() *Sanitizer {
	return &Sanitizer{
		rules: []rule{},
		buf:   make([]byte, 0, 256),
	}
}

// IsPolicy reports whether name is a known preset
func IsPolicy(name string) bool {
	_, ok := policyRules[PolicyPreset(name)]
	return ok
}

// Rule adds a custom rule (earliest rule applies first)
func (s *Sanitizer) Rule(filter uint64, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy appends the rules of a preset
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Passthrough reports whether Sanitize returns its input unchanged
func (s *Sanitizer) Passthrough() bool {
	return len(s.rules) == 0
}

// Sanitize applies all configured rules to the input string
func (s *Sanitizer) Sanitize(data string) string {
	if s.Passthrough() {
		return data
	}
	s.buf = s.Append(s.buf[:0], data)
	return string(s.buf)
}

// Append sanitizes data and appends the result to dst
func (s *Sanitizer) Append(dst []byte, data string) []byte {
	if s.Passthrough() {
		return append(dst, data...)
	}

	for i := 0; i < len(data); {
		r, size := utf8.DecodeRuneInString(data[i:])
		if r == utf8.RuneError && size == 1 {
			// Invalid byte, keep it as is
			dst = s.applyByte(dst, data[i])
			i++
			continue
		}
		i += size

		matched := false
		for _, rl := range s.rules {
			if matchesFilter(r, rl.filter) {
				dst = applyTransform(dst, r, rl.transform)
				matched = true
				break
			}
		}
		if !matched {
			dst = utf8.AppendRune(dst, r)
		}
	}
	return dst
}

// applyByte handles an invalid UTF-8 byte: hex encoding rules encode it, others pass it through
func (s *Sanitizer) applyByte(dst []byte, b byte) []byte {
	for _, rl := range s.rules {
		if rl.filter&FilterNonPrintable != 0 && rl.transform&TransformHexEncode != 0 {
			dst = append(dst, '<')
			dst = hex.AppendEncode(dst, []byte{b})
			return append(dst, '>')
		}
	}
	return append(dst, b)
}

func matchesFilter(r rune, filterMask uint64) bool {
	for _, fc := range filterCheckers {
		if filterMask&fc.flag != 0 && fc.check(r) {
			return true
		}
	}
	return false
}

func applyTransform(dst []byte, r rune, transformMask uint64) []byte {
	switch {
	case transformMask&TransformStrip != 0:
		return dst

	case transformMask&TransformHexEncode != 0:
		var runeBytes [utf8.UTFMax]byte
		n := utf8.EncodeRune(runeBytes[:], r)
		dst = append(dst, '<')
		dst = hex.AppendEncode(dst, runeBytes[:n])
		return append(dst, '>')

	case transformMask&TransformEscape != 0:
		switch r {
		case '\n':
			return append(dst, '\\', 'n')
		case '\r':
			return append(dst, '\\', 'r')
		case '\t':
			return append(dst, '\\', 't')
		}
		if r < 0x100 {
			dst = append(dst, '\\', 'x')
			return hex.AppendEncode(dst, []byte{byte(r)})
		}
		dst = append(dst, '\\', 'u')
		digits := strconv.FormatInt(int64(r), 16)
		for i := len(digits); i < 4; i++ {
			dst = append(dst, '0')
		}
		return append(dst, digits...)
	}
	return utf8.AppendRune(dst, r)
}
