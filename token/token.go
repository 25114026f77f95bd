// Package token defines the lexical token alphabet for fjson (spec §3.2).
package token

import "github.com/aledsdavies/fjson/fjerr"

// Kind identifies a token's lexical category.
type Kind uint8

const (
	EOF Kind = iota
	Illegal

	LBrace // {
	RBrace // }
	LBracket
	RBracket
	Colon
	Comma
	Newline // only surfaced when newline-as-comma is on

	String       // quoted string lexeme (decoding deferred)
	UnquotedIdent // bare identifier, legal only in key position
	Number

	True
	False
	Null

	Comment // only surfaced when comment preservation is on
)

var kindNames = [...]string{
	"EOF", "Illegal",
	"LBrace", "RBrace", "LBracket", "RBracket", "Colon", "Comma", "Newline",
	"String", "UnquotedIdent", "Number",
	"True", "False", "Null",
	"Comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// NumberBase records which numeral system a Number lexeme was written in.
type NumberBase uint8

const (
	Base10 NumberBase = iota
	Base16            // 0x...
	Base8             // 0o...
	Base2             // 0b...
)

// CommentKind distinguishes the three comment forms spec §4.1 recognizes.
type CommentKind uint8

const (
	LineSlash CommentKind = iota // // ...
	LineHash                     // # ...
	Block                        // /* ... */
)

// Token is a (kind, span) pair; Lexeme carries the raw slice for kinds
// whose payload needs further decoding (String, UnquotedIdent, Number).
// Decoding is deferred to the numeric and strdecode packages, per spec §3.2.
type Token struct {
	Kind   Kind
	Span   fjerr.Span
	Lexeme []byte

	// Base is meaningful only when Kind == Number.
	Base NumberBase
	// CommentKind is meaningful only when Kind == Comment.
	CommentKind CommentKind
}

// Text returns the raw lexeme as a string. Allocates; prefer Lexeme in
// hot paths.
func (t Token) Text() string {
	return string(t.Lexeme)
}
