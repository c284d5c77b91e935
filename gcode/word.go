package gcode

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Letters is the word alphabet. O (program names) is not supported.
const Letters = "ABCDEFGHIJKLMNPQRSTUVWXYZ"

// Word is a single letter/value pair such as X-1.2 or G90.1.
type Word struct {
	W   byte
	Arg float64
}

// Key identifies an instruction by letter, number and subcode.
// G38.2 is {'G', 38, 2}.
type Key struct {
	Letter byte
	Number int
	Sub    int
}

func (k Key) String() string {
	if k.Sub != 0 {
		return fmt.Sprintf("%c%d.%d", k.Letter, k.Number, k.Sub)
	}
	return fmt.Sprintf("%c%d", k.Letter, k.Number)
}

func (w Word) Key() Key {
	n := math.Floor(w.Arg)
	return Key{Letter: w.W, Number: int(n), Sub: int(math.Round((w.Arg - n) * 10))}
}

func (w Word) IsAxis() bool {
	return strings.IndexByte("XYZABCUVW", w.W) >= 0
}

func (w Word) IsValid() bool {
	return strings.IndexByte(Letters, w.W) >= 0
}

// isInstruction reports whether the word can only be meaningful as an
// instruction, never as a parameter.
func (w Word) isInstruction() bool {
	return w.W == 'G' || w.W == 'M'
}

func formatFloat(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
	}
	s = strings.TrimRight(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func (w Word) String() string {
	switch w.W {
	case 'G', 'M':
		k := w.Key()
		if k.Sub != 0 {
			return fmt.Sprintf("%c%02d.%d", w.W, k.Number, k.Sub)
		}
		return fmt.Sprintf("%c%02d", w.W, k.Number)
	case 'N', 'L', 'T':
		return string(w.W) + strconv.Itoa(int(w.Arg))
	}
	return string(w.W) + formatFloat(w.Arg, 6)
}

var (
	rxNumber = regexp.MustCompile(`^\s*[+-]?(\d+\.?\d*|\.\d+)`)
	rxCode   = regexp.MustCompile(`^\s*\d+(\.\d+)?`)
	rxInt    = regexp.MustCompile(`^\s*\d+`)
)

func valuePattern(letter byte) *regexp.Regexp {
	switch letter {
	case 'G', 'M':
		return rxCode
	case 'N', 'L', 'T':
		return rxInt
	}
	return rxNumber
}

// MalformedWordError is returned when text cannot be split into words.
type MalformedWordError struct {
	Text   string
	Offset int
	Reason string
}

func (e *MalformedWordError) Error() string {
	return fmt.Sprintf("malformed word at offset %d in %q: %s", e.Offset, e.Text, e.Reason)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// Words splits comment-free text into words. Letters are case-insensitive
// and whitespace may separate a letter from its value.
func Words(text string) ([]Word, error) {
	words, _, err := scanWords(text)
	return words, err
}

// scanWords is Words, also returning the offset of each word in text.
func scanWords(text string) ([]Word, []int, error) {
	var words []Word
	var offsets []int
	i := 0
	for {
		for i < len(text) && isSpace(text[i]) {
			i++
		}
		if i == len(text) {
			return words, offsets, nil
		}

		c := upper(text[i])
		if strings.IndexByte(Letters, c) < 0 {
			reason := fmt.Sprintf("unexpected character %q", text[i])
			if c == 'O' {
				reason = "program names (O words) are not supported"
			}
			return nil, nil, &MalformedWordError{Text: text, Offset: i, Reason: reason}
		}

		loc := valuePattern(c).FindStringIndex(text[i+1:])
		if loc == nil {
			return nil, nil, &MalformedWordError{Text: text, Offset: i, Reason: fmt.Sprintf("missing or invalid value for %c", c)}
		}
		end := i + 1 + loc[1]
		raw := strings.TrimSpace(text[i+1 : end])
		if c == 'G' || c == 'M' {
			if dot := strings.IndexByte(raw, '.'); dot >= 0 && len(raw)-dot-1 != 1 {
				return nil, nil, &MalformedWordError{Text: text, Offset: i, Reason: fmt.Sprintf("%c%s: subcode must be a single digit", c, raw)}
			}
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil, &MalformedWordError{Text: text, Offset: i, Reason: err.Error()}
		}
		words = append(words, Word{W: c, Arg: v})
		offsets = append(offsets, i)
		i = end
	}
}

// ParseWord parses exactly one word.
func ParseWord(s string) (Word, error) {
	words, err := Words(s)
	if err != nil {
		return Word{}, err
	}
	if len(words) != 1 {
		return Word{}, &MalformedWordError{Text: s, Reason: fmt.Sprintf("expected one word, got %d", len(words))}
	}
	return words[0], nil
}
