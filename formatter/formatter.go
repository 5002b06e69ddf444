// FILE: lixenwraith/sawlog/formatter/formatter.go
// Package formatter renders a log record into its single-line text form:
//
//	<TAG> [<timestamp>][<producer>] <message> [<function>:<file>+<line>]
//
// with optional ANSI colouring of the tag, message and badges.
package formatter

import (
	"strconv"
	"time"

	"github.com/fatih/color"

	"github.com/lixenwraith/sawlog/sanitizer"
)

// Levels as rendered by the formatter, most urgent first
const (
	LevelError int64 = iota + 1
	LevelWarning
	LevelNotice
	LevelInfo
	LevelDebug
)

const (
	// producerMask keeps the producer badge at seven hex digits
	producerMask   = 0xFFFFFFF
	producerDigits = 7
	// timestampLayout is the second-resolution part of the timestamp
	timestampLayout = "2006-01-02 15:04:05"
	// fractionDivisor turns nanoseconds into 1/10000 s
	fractionDivisor = 100000
	fractionDigits  = 4
	unknownTag      = "??? "
)

var levelTags = map[int64]string{
	LevelError:   "ERR ",
	LevelWarning: "WAR ",
	LevelNotice:  "NOT ",
	LevelInfo:    "INF ",
	LevelDebug:   "DBG ",
}

// Source identifies the call site that produced a record
type Source struct {
	Function string
	File     string
	Line     int
}

// Formatter manages the buffered formatting of log lines.
// It reuses an internal buffer and is not safe for concurrent use; the
// returned slice is valid until the next call to Format.
type Formatter struct {
	sanitizer         *sanitizer.Sanitizer
	timestampBrackets [2]byte
	producerBrackets  [2]byte
	locationBrackets  [2]byte
	producerShift     uint
	buf               []byte
}

// New creates a formatter with the provided sanitizer
func New(s ...*sanitizer.Sanitizer) *Formatter {
	var san *sanitizer.Sanitizer
	if len(s) > 0 && s[0] != nil {
		san = s[0]
	} else {
		san = sanitizer.New() // Default passthrough sanitizer
	}
	return &Formatter{
		sanitizer:         san,
		timestampBrackets: [2]byte{'[', ']'},
		producerBrackets:  [2]byte{'[', ']'},
		locationBrackets:  [2]byte{'[', ']'},
		buf:               make([]byte, 0, 256),
	}
}

// ValidBrackets reports whether pair is usable as an opening/closing bracket pair
func ValidBrackets(pair string) bool {
	return len(pair) == 2
}

// TimestampBrackets sets the delimiters around the timestamp; invalid pairs are ignored
func (f *Formatter) TimestampBrackets(pair string) *Formatter {
	if ValidBrackets(pair) {
		f.timestampBrackets = [2]byte{pair[0], pair[1]}
	}
	return f
}

// ProducerBrackets sets the delimiters around the producer badge
func (f *Formatter) ProducerBrackets(pair string) *Formatter {
	if ValidBrackets(pair) {
		f.producerBrackets = [2]byte{pair[0], pair[1]}
	}
	return f
}

// LocationBrackets sets the delimiters around the source location
func (f *Formatter) LocationBrackets(pair string) *Formatter {
	if ValidBrackets(pair) {
		f.locationBrackets = [2]byte{pair[0], pair[1]}
	}
	return f
}

// ProducerShift sets how many low bits of the producer id are dropped before display
func (f *Formatter) ProducerShift(shift uint) *Formatter {
	f.producerShift = shift
	return f
}

// Reset clears the formatter buffer
func (f *Formatter) Reset() {
	f.buf = f.buf[:0]
}

// LevelTag returns the four-character tag for a level
func LevelTag(level int64) string {
	if tag, ok := levelTags[level]; ok {
		return tag
	}
	return unknownTag
}

// Format renders one line terminated by '\n'.
// With colored false the output never contains an escape byte beyond what the
// message itself carries (use a sanitizer policy to neutralise those).
func (f *Formatter) Format(level int64, timestamp time.Time, producer uint64, message string, src Source, colored bool) []byte {
	f.Reset()
	lc := levelColor(level)

	f.paint(lc, LevelTag(level), colored)

	// Timestamp badge
	f.bracket(f.timestampBrackets[0], colored)
	f.buf = AppendTimestamp(f.buf, timestamp)
	f.bracket(f.timestampBrackets[1], colored)

	// Producer badge
	f.bracket(f.producerBrackets[0], colored)
	f.paint(producerPalette[PaletteIndex(producer)], string(f.producerHex(producer)), colored)
	f.bracket(f.producerBrackets[1], colored)

	f.buf = append(f.buf, ' ')
	if f.sanitizer.Passthrough() {
		f.paint(lc, message, colored)
	} else {
		f.paint(lc, f.sanitizer.Sanitize(message), colored)
	}
	f.buf = append(f.buf, ' ')

	// Location badge
	f.bracket(f.locationBrackets[0], colored)
	f.buf = f.sanitizer.Append(f.buf, src.Function)
	f.buf = append(f.buf, ':')
	f.buf = f.sanitizer.Append(f.buf, src.File)
	f.buf = append(f.buf, '+')
	f.buf = strconv.AppendInt(f.buf, int64(src.Line), 10)
	f.bracket(f.locationBrackets[1], colored)

	f.buf = append(f.buf, '\n')
	return f.buf
}

// producerHex renders the masked producer id as exactly seven lowercase hex digits
func (f *Formatter) producerHex(producer uint64) []byte {
	var digits [16]byte
	v := (producer >> f.producerShift) & producerMask
	out := strconv.AppendUint(digits[:0], v, 16)
	if pad := producerDigits - len(out); pad > 0 {
		var padded [producerDigits]byte
		for i := 0; i < pad; i++ {
			padded[i] = '0'
		}
		copy(padded[pad:], out)
		return padded[:]
	}
	return out
}

// AppendTimestamp appends "YYYY-MM-DD HH:MM:SS+ffff" where ffff is ten-thousandths of a second
func AppendTimestamp(buf []byte, ts time.Time) []byte {
	buf = ts.AppendFormat(buf, timestampLayout)
	buf = append(buf, '+')
	frac := strconv.Itoa(ts.Nanosecond() / fractionDivisor)
	for i := len(frac); i < fractionDigits; i++ {
		buf = append(buf, '0')
	}
	return append(buf, frac...)
}

func (f *Formatter) bracket(b byte, colored bool) {
	if colored {
		f.buf = append(f.buf, bracketColor.Sprint(string(b))...)
		return
	}
	f.buf = append(f.buf, b)
}

func (f *Formatter) paint(c *color.Color, s string, colored bool) {
	if colored && c != nil {
		f.buf = append(f.buf, c.Sprint(s)...)
		return
	}
	f.buf = append(f.buf, s...)
}
