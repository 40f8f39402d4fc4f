package expand

import (
	"jsh.dev/jsh/token"
)

// Aliases applies alias substitution to a token stream: if the first
// token of a pipeline segment (the first token, or one right after a
// Pipe) is a Word naming a known alias, the alias's replacement text is
// tokenized (by tokenize, so the expand package doesn't need to import
// the syntax package and create an import cycle) and spliced in place
// of that token. Expansion happens exactly once per segment — the
// replacement tokens are never themselves checked against the alias
// table — so `alias a="a b"` cannot recurse.
func Aliases(toks []token.Token, table *AliasTable, tokenize func(string) []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	segStart := true
	for _, t := range toks {
		if value, ok := table.Get(t.Value); ok && segStart && t.Kind == token.Word {
			out = append(out, tokenize(value)...)
		} else {
			out = append(out, t)
		}
		segStart = t.Kind == token.Pipe
	}
	return out
}

// Variables applies $NAME expansion to every unquoted Word token: a
// word whose first character is '$' becomes the named variable's
// value, or the empty string if unset. Quoted words and non-Word
// tokens pass through unchanged.
func Variables(toks []token.Token, env Environ) []token.Token {
	out := make([]token.Token, len(toks))
	for i, t := range toks {
		if t.Kind == token.Word && !t.Quoted && len(t.Value) >= 1 && t.Value[0] == '$' {
			value, _ := env.Get(t.Value[1:])
			t.Value = value
		}
		out[i] = t
	}
	return out
}
