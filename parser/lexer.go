package parser

import (
	"strings"
	"unicode"
)

// Lexer turns raw .rqc source into a token stream. Whitespace is skipped
// between tokens; newlines increment the line counter used for diagnostics.
// Comments are real tokens, not discarded, since the parser attaches them to
// fields and method blocks.
type Lexer struct {
	input []rune
	pos   int
	line  int
}

// NewLexer creates a lexer over the given source text.
func NewLexer(input string) *Lexer {
	return &Lexer{input: []rune(input), line: 1}
}

func (l *Lexer) current() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

func (l *Lexer) peek() (rune, bool) {
	return l.peekAt(1)
}

func (l *Lexer) peekAt(offset int) (rune, bool) {
	if l.pos+offset >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos+offset], true
}

func (l *Lexer) advance() {
	if ch, ok := l.current(); ok {
		if ch == '\n' {
			l.line++
		}
		l.pos++
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		ch, ok := l.current()
		if !ok || !isWhitespace(ch) {
			return
		}
		l.advance()
	}
}

// readString consumes a quoted string. There is no escape processing; an
// unterminated string reads to end of input.
func (l *Lexer) readString() string {
	quote, _ := l.current()
	l.advance() // opening quote

	var sb strings.Builder
	for {
		ch, ok := l.current()
		if !ok {
			break
		}
		if ch == quote {
			l.advance() // closing quote
			break
		}
		sb.WriteRune(ch)
		l.advance()
	}
	return sb.String()
}

// readIdentifier consumes alphanumerics plus "_ / : . - ,". The permissive
// charset lets unquoted paths, URLs, and comma-lists lex as one identifier.
func (l *Lexer) readIdentifier() string {
	var sb strings.Builder
	for {
		ch, ok := l.current()
		if !ok || !isIdentRune(ch) {
			break
		}
		sb.WriteRune(ch)
		l.advance()
	}
	return sb.String()
}

// readNumber consumes an optional leading '-', digits, and at most one '.'.
func (l *Lexer) readNumber() string {
	var sb strings.Builder
	hasDot := false

	if ch, ok := l.current(); ok && ch == '-' {
		sb.WriteRune('-')
		l.advance()
	}

	for {
		ch, ok := l.current()
		if !ok {
			break
		}
		if isDigit(ch) {
			sb.WriteRune(ch)
			l.advance()
		} else if ch == '.' && !hasDot {
			hasDot = true
			sb.WriteRune('.')
			l.advance()
		} else {
			break
		}
	}
	return sb.String()
}

// readComment consumes "//" and the rest of the line, trimmed.
func (l *Lexer) readComment() string {
	l.advance() // first /
	l.advance() // second /

	var sb strings.Builder
	for {
		ch, ok := l.current()
		if !ok || ch == '\n' {
			break
		}
		sb.WriteRune(ch)
		l.advance()
	}
	return strings.TrimSpace(sb.String())
}

// readDocComment consumes "/** ... */", strips each line's leading '*' and
// surrounding whitespace, and joins non-empty lines with single spaces.
func (l *Lexer) readDocComment() string {
	l.advance() // /
	l.advance() // *
	l.advance() // *

	var sb strings.Builder
	for {
		ch, ok := l.current()
		if !ok {
			break
		}
		if next, nok := l.peek(); ch == '*' && nok && next == '/' {
			l.advance()
			l.advance()
			break
		}
		sb.WriteRune(ch)
		l.advance()
	}

	var lines []string
	for _, line := range strings.Split(sb.String(), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " ")
}

// Next returns the next token, advancing the lexer. After the input is
// exhausted it returns EOF tokens forever.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	line := l.line
	ch, ok := l.current()
	if !ok {
		return Token{Type: TokenEOF, Line: line}
	}

	switch {
	case ch == '{':
		l.advance()
		return Token{Type: TokenLBrace, Literal: "{", Line: line}
	case ch == '}':
		l.advance()
		return Token{Type: TokenRBrace, Literal: "}", Line: line}
	case ch == '(':
		l.advance()
		return Token{Type: TokenLParen, Literal: "(", Line: line}
	case ch == ')':
		l.advance()
		return Token{Type: TokenRParen, Literal: ")", Line: line}
	case ch == '?':
		l.advance()
		return Token{Type: TokenQuestion, Literal: "?", Line: line}
	case ch == '@':
		l.advance()
		return Token{Type: TokenAt, Literal: "@", Line: line}
	case ch == '"' || ch == '\'':
		return Token{Type: TokenString, Literal: l.readString(), Line: line}
	case ch == '/' && l.peekIs(1, '/'):
		return Token{Type: TokenComment, Literal: l.readComment(), Line: line}
	case ch == '/' && l.peekIs(1, '*') && l.peekIs(2, '*'):
		return Token{Type: TokenDocComment, Literal: l.readDocComment(), Line: line}
	case isDigit(ch) || (ch == '-' && l.peekDigit()):
		return Token{Type: TokenNumber, Literal: l.readNumber(), Line: line}
	default:
		ident := l.readIdentifier()
		if ident == "" {
			// Character outside every lexical class (e.g. '#'). Consume it
			// as a single-character identifier so the stream always makes
			// progress; the parser skips unknown identifiers.
			l.advance()
			return Token{Type: TokenIdent, Literal: string(ch), Line: line}
		}
		return Token{Type: TokenIdent, Literal: ident, Line: line}
	}
}

func (l *Lexer) peekIs(offset int, want rune) bool {
	ch, ok := l.peekAt(offset)
	return ok && ch == want
}

func (l *Lexer) peekDigit() bool {
	ch, ok := l.peek()
	return ok && isDigit(ch)
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentRune(ch rune) bool {
	switch ch {
	case '_', '/', ':', '.', '-', ',':
		return true
	}
	// Any letter or digit qualifies, not just ASCII, so unquoted names
	// survive non-English identifiers.
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
