// Package syntax implements the shell's tokenizer, pipeline grammar, and
// parser. It is a deliberately small subset of a full shell grammar:
// words, quoting, pipes, and redirections only — no arithmetic, no
// globbing, no here-docs.
package syntax

import (
	"strings"

	"jsh.dev/jsh/token"
)

// Tokenize converts a raw input line (no trailing newline) into an
// ordered token stream. It never returns an error: malformed input,
// such as an unterminated quote, is accepted and turned into the best
// token it can — syntax errors are strictly the parser's job.
func Tokenize(line string) []token.Token {
	var toks []token.Token
	l := lexer{src: line}
	for {
		tok, ok := l.next()
		if !ok {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) peekByte() (byte, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) next() (token.Token, bool) {
	l.skipSpace()
	c, ok := l.peekByte()
	if !ok {
		return token.Token{}, false
	}
	switch c {
	case '|':
		l.pos++
		return token.Token{Kind: token.Pipe, Value: "|"}, true
	case '<':
		l.pos++
		return token.Token{Kind: token.Less, Value: "<"}, true
	case '>':
		l.pos++
		if b, ok := l.peekByte(); ok && b == '>' {
			l.pos++
			return token.Token{Kind: token.GreatGreat, Value: ">>"}, true
		}
		return token.Token{Kind: token.Great, Value: ">"}, true
	case '\'', '"':
		return l.lexQuoted(c), true
	default:
		return l.lexWord(), true
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t':
			l.pos++
		default:
			return
		}
	}
}

// lexQuoted consumes a single/double quoted word. The quotes delimit
// the word but are not part of its value, and no escape processing
// happens inside. An unterminated quote runs to end of line.
func (l *lexer) lexQuoted(quote byte) token.Token {
	l.pos++ // opening quote
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != quote {
		l.pos++
	}
	val := l.src[start:l.pos]
	if l.pos < len(l.src) {
		l.pos++ // closing quote
	}
	return token.Token{Kind: token.Word, Value: val, Quoted: true}
}

// lexWord consumes an unquoted word, stopping at whitespace, an
// operator character, or another quote (so `foo"bar"` lexes as two
// adjacent words rather than one spliced value).
func (l *lexer) lexWord() token.Token {
	start := l.pos
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '|', '<', '>', '\'', '"':
			return token.Token{Kind: token.Word, Value: l.src[start:l.pos]}
		}
		l.pos++
	}
	return token.Token{Kind: token.Word, Value: l.src[start:l.pos]}
}

// StripTrailingBackground reports whether the raw line (before
// tokenization) ends with '&' (trailing whitespace aside, and with or
// without whitespace before it), and returns the line with
// it and any preceding whitespace removed. This is a lexical strip on
// the raw line, not a token produced by Tokenize — an '&' anywhere
// else in the line is left for the tokenizer to turn into a literal
// word.
func StripTrailingBackground(line string) (rest string, background bool) {
	trimmed := strings.TrimRight(line, " \t")
	if strings.HasSuffix(trimmed, "&") {
		return strings.TrimRight(trimmed[:len(trimmed)-1], " \t"), true
	}
	return line, false
}
