package asc

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Token types produced by the .asc lexer.
//
// The format is line-oriented: most records are a keyword followed by
// space-separated integer and word fields, but SYMATTR and the text/shape
// records carry a free-form rest-of-line payload that must stay a single
// token. A regex lexer cannot delimit those, so the lexer is hand written
// and plugged into participle through its lexer.Definition interface.
const (
	TokenIdent lexer.TokenType = lexer.EOF - (iota + 1)
	TokenInt
	TokenRest
	TokenEOL
)

// restKeywords are record types whose entire payload is one Rest token.
var restKeywords = map[string]bool{
	"TEXT":      true,
	"LINE":      true,
	"RECTANGLE": true,
	"CIRCLE":    true,
	"ARC":       true,
}

type ascDefinition struct{}

// LexerDefinition tokenizes .asc content for the participle grammar.
var LexerDefinition lexer.Definition = ascDefinition{}

func (ascDefinition) Symbols() map[string]lexer.TokenType {
	return map[string]lexer.TokenType{
		"EOF":   lexer.EOF,
		"Ident": TokenIdent,
		"Int":   TokenInt,
		"Rest":  TokenRest,
		"EOL":   TokenEOL,
	}
}

func (d ascDefinition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("asc: read input: %w", err)
	}
	return d.LexString(filename, string(data))
}

// LexString implements lexer.StringDefinition so ParseString avoids an
// io.Reader round trip.
func (ascDefinition) LexString(filename, input string) (lexer.Lexer, error) {
	l := &ascLexer{}
	lineNo := 1
	for start := 0; start <= len(input); lineNo++ {
		if start == len(input) {
			break
		}
		lineEnd := strings.IndexByte(input[start:], '\n')
		next := len(input)
		raw := input[start:]
		if lineEnd >= 0 {
			raw = input[start : start+lineEnd]
			next = start + lineEnd + 1
		}
		line := strings.TrimSuffix(raw, "\r")
		lexLine(l, filename, line, lineNo, start)
		start = next
	}
	l.tokens = append(l.tokens, lexer.Token{
		Type: lexer.EOF,
		Pos:  lexer.Position{Filename: filename, Offset: len(input), Line: lineNo, Column: 1},
	})
	return l, nil
}

// lexLine appends the tokens of one line, followed by an EOL token.
// Blank lines produce no tokens at all.
func lexLine(l *ascLexer, filename, line string, lineNo, lineOffset int) {
	emit := func(t lexer.TokenType, value string, col int) {
		l.tokens = append(l.tokens, lexer.Token{
			Type:  t,
			Value: value,
			Pos: lexer.Position{
				Filename: filename,
				Offset:   lineOffset + col,
				Line:     lineNo,
				Column:   col + 1,
			},
		})
	}

	i := 0
	nextWord := func() (string, int) {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		start := i
		for i < len(line) && line[i] != ' ' && line[i] != '\t' {
			i++
		}
		return line[start:i], start
	}

	keyword, col := nextWord()
	if keyword == "" {
		return
	}
	emit(TokenIdent, keyword, col)

	emitRest := func() {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		rest := strings.TrimSpace(line[i:])
		if rest != "" {
			emit(TokenRest, rest, i)
		}
		i = len(line)
	}

	switch {
	case keyword == "SYMATTR":
		if key, kcol := nextWord(); key != "" {
			emit(TokenIdent, key, kcol)
		}
		emitRest()
	case restKeywords[keyword]:
		emitRest()
	default:
		for {
			word, wcol := nextWord()
			if word == "" {
				break
			}
			if isIntWord(word) {
				emit(TokenInt, word, wcol)
			} else {
				emit(TokenIdent, word, wcol)
			}
		}
	}

	emit(TokenEOL, "\n", len(line))
}

func isIntWord(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ascLexer hands out the pre-computed token stream.
type ascLexer struct {
	tokens []lexer.Token
	index  int
}

func (l *ascLexer) Next() (lexer.Token, error) {
	if l.index >= len(l.tokens) {
		return l.tokens[len(l.tokens)-1], nil
	}
	t := l.tokens[l.index]
	l.index++
	return t, nil
}
