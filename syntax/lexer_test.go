package syntax

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp"

	"jsh.dev/jsh/token"
)

func TestTokenize(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		in   string
		want []token.Token
	}{
		{"", nil},
		{"  \t ", nil},
		{"echo hi", []token.Token{
			{Kind: token.Word, Value: "echo"},
			{Kind: token.Word, Value: "hi"},
		}},
		{`echo "hello world"`, []token.Token{
			{Kind: token.Word, Value: "echo"},
			{Kind: token.Word, Value: "hello world", Quoted: true},
		}},
		{`echo 'a b'`, []token.Token{
			{Kind: token.Word, Value: "echo"},
			{Kind: token.Word, Value: "a b", Quoted: true},
		}},
		{`echo "unterminated`, []token.Token{
			{Kind: token.Word, Value: "echo"},
			{Kind: token.Word, Value: "unterminated", Quoted: true},
		}},
		{"a|b", []token.Token{
			{Kind: token.Word, Value: "a"},
			{Kind: token.Pipe, Value: "|"},
			{Kind: token.Word, Value: "b"},
		}},
		{"a>>b", []token.Token{
			{Kind: token.Word, Value: "a"},
			{Kind: token.GreatGreat, Value: ">>"},
			{Kind: token.Word, Value: "b"},
		}},
		{"a>b", []token.Token{
			{Kind: token.Word, Value: "a"},
			{Kind: token.Great, Value: ">"},
			{Kind: token.Word, Value: "b"},
		}},
		{"cat<f", []token.Token{
			{Kind: token.Word, Value: "cat"},
			{Kind: token.Less, Value: "<"},
			{Kind: token.Word, Value: "f"},
		}},
		{`echo "a|b"`, []token.Token{
			{Kind: token.Word, Value: "echo"},
			{Kind: token.Word, Value: "a|b", Quoted: true},
		}},
	}
	for _, test := range tests {
		c.Run(test.in, func(c *qt.C) {
			c.Assert(Tokenize(test.in), qt.DeepEquals, test.want)
		})
	}
}

// TestTokenizeMixedQuotingWithCmp exercises a line mixing quoted and
// bare words, redirections, and a pipe in one go, using go-cmp for the
// diff output rather than quicktest's DeepEquals.
func TestTokenizeMixedQuotingWithCmp(t *testing.T) {
	got := Tokenize(`grep 'an error' app.log | tee -a "combined log.txt"`)
	want := []token.Token{
		{Kind: token.Word, Value: "grep"},
		{Kind: token.Word, Value: "an error", Quoted: true},
		{Kind: token.Word, Value: "app.log"},
		{Kind: token.Pipe, Value: "|"},
		{Kind: token.Word, Value: "tee"},
		{Kind: token.Word, Value: "-a"},
		{Kind: token.Word, Value: "combined log.txt", Quoted: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
	}
}

func TestStripTrailingBackground(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		in       string
		wantRest string
		wantBg   bool
	}{
		{"sleep 30 &", "sleep 30", true},
		{"sleep 30&", "sleep 30", true},
		{"sleep 30", "sleep 30", false},
		{"echo a & b", "echo a & b", false},
	}
	for _, test := range tests {
		rest, bg := StripTrailingBackground(test.in)
		c.Assert(rest, qt.Equals, test.wantRest)
		c.Assert(bg, qt.Equals, test.wantBg)
	}
}
