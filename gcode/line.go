package gcode

import (
	"errors"
	"strconv"
	"strings"
)

type CommentStyle byte

const (
	CommentParens CommentStyle = iota
	CommentSemicolon
)

// Comment holds every comment found on a line, joined with ". ".
type Comment struct {
	Text  string
	Style CommentStyle
}

func (c *Comment) String() string {
	if c.Style == CommentSemicolon {
		if c.Text == "" {
			return ";"
		}
		return "; " + c.Text
	}
	return "(" + c.Text + ")"
}

// Line is one physical line of a program.
type Line struct {
	Text string

	// Number is the leading N word, if present.
	Number *int

	// Block is nil for blank, comment-only and macro lines.
	Block   *Block
	Comment *Comment

	// Macro is the trailing %-delimited text, if any.
	Macro string

	// InMacro is set by Parser for lines within an open % region.
	InMacro bool
}

// IsMacro reports whether the line is a %-wrapped macro line.
func (l *Line) IsMacro() bool {
	return l.Macro != "" && l.Block == nil && l.Number == nil
}

func (l *Line) String() string {
	var parts []string
	if l.Number != nil {
		parts = append(parts, "N"+strconv.Itoa(*l.Number))
	}
	if l.Block != nil {
		parts = append(parts, l.Block.String())
	}
	if l.Comment != nil {
		parts = append(parts, l.Comment.String())
	}
	if l.Macro != "" {
		parts = append(parts, l.Macro)
	}
	return strings.Join(parts, " ")
}

type ParseOptions struct {
	// Registry resolves instructions, nil for the builtin set.
	Registry *Registry

	// CleanBlock strips unknown instruction words instead of failing.
	CleanBlock bool

	// AllowUnresolved keeps unknown instruction words as modal params,
	// leaving the decision to a Machine.
	AllowUnresolved bool
}

// ParseLine parses a single line with the builtin instruction set.
func ParseLine(text string) (*Line, error) {
	return ParseLineWith(text, ParseOptions{})
}

func ParseLineWith(text string, opt ParseOptions) (*Line, error) {
	code, comment, macro, err := splitLine(text)
	if err != nil {
		return nil, err
	}
	l := &Line{Text: text, Comment: comment, Macro: macro}

	words, offsets, err := scanWords(code)
	var mErr *MalformedWordError
	if errors.As(err, &mErr) {
		mErr.Text = text
	}
	if err != nil {
		return nil, err
	}
	for i, w := range words {
		if w.W != 'N' {
			continue
		}
		if i > 0 {
			return nil, &MalformedWordError{Text: text, Offset: offsets[i], Reason: "line number must be the first word"}
		}
		n := int(w.Arg)
		l.Number = &n
	}
	if l.Number != nil {
		words = words[1:]
	}
	if len(words) == 0 {
		return l, nil
	}

	b := NewBlock(opt.Registry, words...)
	if u := b.Unresolved(); len(u) > 0 {
		switch {
		case opt.CleanBlock:
			b = b.withoutUnresolved()
		case !opt.AllowUnresolved:
			return nil, &UnsupportedInstructionError{Words: u}
		}
	}
	if len(b.words) > 0 {
		l.Block = b
	}
	return l, nil
}

// splitLine separates code from comments and a trailing macro.
func splitLine(text string) (code string, c *Comment, macro string, err error) {
	var sb strings.Builder
	var texts []string
	found := false
	style := CommentParens

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			end := strings.IndexByte(text[i+1:], ')')
			if end < 0 {
				return "", nil, "", &MalformedWordError{Text: text, Offset: i, Reason: "unterminated comment"}
			}
			found = true
			if t := strings.TrimSpace(text[i+1 : i+1+end]); t != "" {
				texts = append(texts, t)
			}
			// keep offsets into code valid for text
			sb.WriteString(strings.Repeat(" ", end+2))
			i += end + 1
		case ';':
			rest := text[i+1:]
			if p := strings.IndexByte(rest, '%'); p >= 0 {
				macro = strings.TrimSpace(rest[p:])
				rest = rest[:p]
			}
			found = true
			style = CommentSemicolon
			if t := strings.TrimSpace(rest); t != "" {
				texts = append(texts, t)
			}
			i = len(text)
		case '%':
			macro = strings.TrimSpace(text[i:])
			i = len(text)
		default:
			sb.WriteByte(text[i])
		}
	}

	if found {
		c = &Comment{Text: strings.Join(texts, ". "), Style: style}
	}
	return sb.String(), c, macro, nil
}

// togglesMacro reports whether the line opens or closes a % region.
func (l *Line) togglesMacro() bool {
	return strings.Count(l.Macro, "%")%2 == 1
}
