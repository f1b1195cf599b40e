package asc

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/alecthomas/participle/v2"
)

// Parser parses LTspice .asc schematics into Schematic values.
type Parser struct {
	parser *participle.Parser[fileAST]
}

// NewParser builds a parser for the .asc grammar.
func NewParser() (*Parser, error) {
	p, err := participle.Build[fileAST](
		participle.Lexer(LexerDefinition),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("asc: failed to build parser: %w", err)
	}
	return &Parser{parser: p}, nil
}

// ParseFile reads and parses a schematic file, sniffing its encoding.
func (p *Parser) ParseFile(filename string) (*Schematic, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("asc: failed to read file: %w", err)
	}
	return p.parseBytes(filename, raw)
}

// Parse reads and parses a schematic from r, sniffing its encoding.
func (p *Parser) Parse(r io.Reader) (*Schematic, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("asc: failed to read input: %w", err)
	}
	return p.parseBytes("", raw)
}

// ParseString parses already-decoded schematic text.
func (p *Parser) ParseString(input string) (*Schematic, error) {
	return p.parseText("", normalizeMicro(input))
}

func (p *Parser) parseBytes(filename string, raw []byte) (*Schematic, error) {
	text, err := DecodeBytes(raw)
	if err != nil {
		if filename != "" {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		return nil, err
	}
	return p.parseText(filename, text)
}

func (p *Parser) parseText(filename, text string) (*Schematic, error) {
	ast, err := p.parser.ParseString(filename, text)
	if err != nil {
		return nil, fmt.Errorf("asc: parse error: %w", err)
	}
	return buildSchematic(ast), nil
}

var defaultParser = sync.OnceValues(NewParser)

// ParseFile parses the schematic at path with a shared parser instance.
func ParseFile(path string) (*Schematic, error) {
	p, err := defaultParser()
	if err != nil {
		return nil, err
	}
	return p.ParseFile(path)
}

// Parse parses a schematic from r with a shared parser instance.
func Parse(r io.Reader) (*Schematic, error) {
	p, err := defaultParser()
	if err != nil {
		return nil, err
	}
	return p.Parse(r)
}

// buildSchematic converts the grammar AST into the semantic model,
// preserving file declaration order throughout.
func buildSchematic(f *fileAST) *Schematic {
	sch := &Schematic{}
	if f.Version != nil {
		sch.Version = f.Version.Token
	}
	if f.Sheet != nil {
		sch.Sheet = Sheet{Number: f.Sheet.Number, Width: f.Sheet.Width, Height: f.Sheet.Height}
	}

	for _, it := range f.Items {
		switch {
		case it.Wire != nil:
			sch.Wires = append(sch.Wires, Wire{
				P1: Point{X: it.Wire.X1, Y: it.Wire.Y1},
				P2: Point{X: it.Wire.X2, Y: it.Wire.Y2},
			})

		case it.Flag != nil:
			sch.Flags = append(sch.Flags, Flag{
				At:    Point{X: it.Flag.X, Y: it.Flag.Y},
				Label: it.Flag.Label,
			})

		case it.IOPin != nil:
			sch.IOPins = append(sch.IOPins, IOPin{
				At:  Point{X: it.IOPin.X, Y: it.IOPin.Y},
				Dir: PinDir(it.IOPin.Dir),
			})

		case it.Symbol != nil:
			sch.Symbols = append(sch.Symbols, buildSymbol(it.Symbol))

		case it.Text != nil:
			sch.Texts = append(sch.Texts, Text{Raw: it.Text.Raw})
		}
		// Shapes and unknown records are drawing-only; dropped.
	}
	return sch
}

func buildSymbol(s *symbolAST) Symbol {
	sym := Symbol{
		Kind:   s.Kind,
		At:     Point{X: s.X, Y: s.Y},
		Orient: s.Orient,
	}
	for _, c := range s.Children {
		switch {
		case c.Attr != nil:
			sym.Attr.Set(c.Attr.Key, c.Attr.Value)
		case c.Window != nil:
			w := Window{
				Kind:   c.Window.Kind,
				At:     Point{X: c.Window.X, Y: c.Window.Y},
				Anchor: c.Window.Anchor,
			}
			if c.Window.Size != nil {
				w.Size = *c.Window.Size
			}
			sym.Windows = append(sym.Windows, w)
		}
	}
	return sym
}
