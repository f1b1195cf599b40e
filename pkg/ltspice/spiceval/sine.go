package spiceval

import (
	"fmt"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Sine holds the leading arguments of a SINE() source specification. LTspice
// accepts up to seven arguments; only the first three matter for netlist
// generation.
type Sine struct {
	DC   float64 // offset, defaults to 0
	Amp  float64 // amplitude, defaults to 1
	Freq float64 // frequency in Hz, defaults to 0
}

type sineAST struct {
	Args []float64 `parser:"Open @Number* Close"`
}

var sineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Open", Pattern: `SINE\(`},
	{Name: "Close", Pattern: `\)`},
	{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

var sineParser = sync.OnceValues(func() (*participle.Parser[sineAST], error) {
	return participle.Build[sineAST](
		participle.Lexer(sineLexer),
		participle.Elide("Whitespace"),
	)
})

// ParseSine parses a "SINE(dc amp freq ...)" specification. Missing
// arguments take their defaults; arguments past the third are accepted and
// ignored.
func ParseSine(s string) (Sine, error) {
	p, err := sineParser()
	if err != nil {
		return Sine{}, fmt.Errorf("spiceval: build SINE grammar: %w", err)
	}
	ast, err := p.ParseString("", s)
	if err != nil {
		return Sine{}, fmt.Errorf("spiceval: %q: %w", s, err)
	}

	sine := Sine{Amp: 1}
	if len(ast.Args) > 0 {
		sine.DC = ast.Args[0]
	}
	if len(ast.Args) > 1 {
		sine.Amp = ast.Args[1]
	}
	if len(ast.Args) > 2 {
		sine.Freq = ast.Args[2]
	}
	return sine, nil
}
