// Package odata parses the filter, order and select syntax produced by the
// query serializer back into predicate trees.
//
// Supported grammar, loosest binding first:
//
//	or                       left-assoc
//	and                      left-assoc
//	eq ne gt ge lt le        non-assoc
//	add sub                  left-assoc
//	mul div mod              left-assoc
//	not, unary -             prefix
//	literal | field | name(args) | (expr)
package odata

import (
	"fmt"
	"regexp"
)

type TokenType string

const (
	TokenLParen     TokenType = "LPAREN"
	TokenRParen     TokenType = "RPAREN"
	TokenComma      TokenType = "COMMA"
	TokenMinus      TokenType = "MINUS"
	TokenString     TokenType = "STRING"
	TokenNumber     TokenType = "NUMBER"
	TokenCast       TokenType = "CAST"
	TokenIdentifier TokenType = "IDENTIFIER"
	TokenWhitespace TokenType = "WHITESPACE"
	TokenEOF        TokenType = "EOF"
)

type Token struct {
	Type     TokenType
	Value    string
	Position int
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q)", t.Type, t.Value)
}

type tokenPattern struct {
	Type    TokenType
	Pattern *regexp.Regexp
}

// Order matters: cast literals before identifiers, numbers before minus.
var patterns = []tokenPattern{
	{TokenWhitespace, regexp.MustCompile(`^\s+`)},
	{TokenCast, regexp.MustCompile(`^cast\(\s*[^,()'\s]+\s*,\s*Edm\.[A-Za-z]+\s*\)`)},
	{TokenString, regexp.MustCompile(`^'(?:[^']|'')*'`)},
	{TokenNumber, regexp.MustCompile(`^\d+(?:\.\d+)?(?:[eE][+-]?\d+)?[fFmMlLdD]?`)},
	{TokenIdentifier, regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(?:/[A-Za-z_][A-Za-z0-9_]*)*`)},
	{TokenLParen, regexp.MustCompile(`^\(`)},
	{TokenRParen, regexp.MustCompile(`^\)`)},
	{TokenComma, regexp.MustCompile(`^,`)},
	{TokenMinus, regexp.MustCompile(`^-`)},
}

// Tokenize splits text into tokens and appends an EOF token.
func Tokenize(text string) ([]Token, error) {
	var tokens []Token
	position := 0
	for position < len(text) {
		remaining := text[position:]
		matched := false
		for _, pattern := range patterns {
			loc := pattern.Pattern.FindStringIndex(remaining)
			if loc == nil {
				continue
			}
			if pattern.Type != TokenWhitespace {
				tokens = append(tokens, Token{
					Type:     pattern.Type,
					Value:    remaining[:loc[1]],
					Position: position,
				})
			}
			position += loc[1]
			matched = true
			break
		}
		if !matched {
			return nil, &SyntaxError{Position: position, Message: fmt.Sprintf("unexpected character %q", text[position])}
		}
	}
	return append(tokens, Token{Type: TokenEOF, Position: len(text)}), nil
}

// SyntaxError locates a parse failure in the input text.
type SyntaxError struct {
	Position int
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Position, e.Message)
}
