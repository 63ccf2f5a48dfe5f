// Package token splits source text into bracket and word tokens.
package token

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// Token is one bracket or word, along with where it was found.
type Token struct {
	Text string
	Pos  lexer.Position
}

func (tok Token) String() string { return fmt.Sprintf("%v %q", tok.Pos, tok.Text) }

// IsOpen returns true for the "[" and "{" tokens.
func (tok Token) IsOpen() bool { return tok.Text == "[" || tok.Text == "{" }

// IsClose returns true for the "]" and "}" tokens.
func (tok Token) IsClose() bool { return tok.Text == "]" || tok.Text == "}" }

// Closer returns the closing bracket that matches an opening one, or "".
func (tok Token) Closer() string {
	switch tok.Text {
	case "[":
		return "]"
	case "{":
		return "}"
	}
	return ""
}

// Every rune is either whitespace, a bracket, or part of a word, so these
// rules never fail to match.
var definition = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Bracket", Pattern: `[\[\]{}]`},
		{Name: "Word", Pattern: `[^\[\]{}\s]+`},
	},
})

var whitespace = definition.Symbols()["Whitespace"]

// Tokenize splits text into tokens. Brackets are always their own token;
// any other maximal run of non-space characters is a word. The name is only
// used for token positions.
func Tokenize(name, text string) ([]Token, error) {
	lex, err := definition.LexString(name, text)
	if err != nil {
		return nil, err
	}
	var toks []Token
	for {
		lt, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if lt.EOF() {
			return toks, nil
		}
		if lt.Type == whitespace {
			continue
		}
		toks = append(toks, Token{Text: lt.Value, Pos: lt.Pos})
	}
}

// Texts returns just the text of each token.
func Texts(toks []Token) []string {
	texts := make([]string, len(toks))
	for i, tok := range toks {
		texts[i] = tok.Text
	}
	return texts
}
