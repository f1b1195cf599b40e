package asc

// Grammar AST for the .asc line format. These types mirror the file syntax
// one record per line; Build converts them into the semantic Schematic.

type fileAST struct {
	Version *versionAST `parser:"@@"`
	Sheet   *sheetAST   `parser:"@@?"`
	Items   []*itemAST  `parser:"@@*"`
}

type versionAST struct {
	Token string `parser:"'Version' @(Ident|Int) EOL"`
}

type sheetAST struct {
	Number int `parser:"'SHEET' @Int"`
	Width  int `parser:"@Int"`
	Height int `parser:"@Int EOL"`
}

type itemAST struct {
	Wire    *wireAST    `parser:"@@"`
	Flag    *flagAST    `parser:"| @@"`
	IOPin   *iopinAST   `parser:"| @@"`
	Symbol  *symbolAST  `parser:"| @@"`
	Text    *textAST    `parser:"| @@"`
	Shape   *shapeAST   `parser:"| @@"`
	Unknown *unknownAST `parser:"| @@"`
}

type wireAST struct {
	X1 int `parser:"'WIRE' @Int"`
	Y1 int `parser:"@Int"`
	X2 int `parser:"@Int"`
	Y2 int `parser:"@Int EOL"`
}

type flagAST struct {
	X     int    `parser:"'FLAG' @Int"`
	Y     int    `parser:"@Int"`
	Label string `parser:"@(Ident|Int) EOL"`
}

type iopinAST struct {
	X   int    `parser:"'IOPIN' @Int"`
	Y   int    `parser:"@Int"`
	Dir string `parser:"@Ident EOL"`
}

type symbolAST struct {
	Kind     string      `parser:"'SYMBOL' @Ident"`
	X        int         `parser:"@Int"`
	Y        int         `parser:"@Int"`
	Orient   string      `parser:"@Ident EOL"`
	Children []*childAST `parser:"@@*"`
}

type childAST struct {
	Window *windowAST `parser:"@@"`
	Attr   *attrAST   `parser:"| @@"`
}

type windowAST struct {
	Kind   int    `parser:"'WINDOW' @Int"`
	X      int    `parser:"@Int"`
	Y      int    `parser:"@Int"`
	Anchor string `parser:"@Ident"`
	Size   *int   `parser:"@Int? EOL"`
}

type attrAST struct {
	Key   string `parser:"'SYMATTR' @Ident"`
	Value string `parser:"@Rest? EOL"`
}

type textAST struct {
	Raw string `parser:"'TEXT' @Rest? EOL"`
}

type shapeAST struct {
	Kind string `parser:"@('LINE'|'RECTANGLE'|'CIRCLE'|'ARC')"`
	Raw  string `parser:"@Rest? EOL"`
}

// unknownAST swallows record types this tool does not model (DATAFLAG and
// friends) so they cannot break parsing; the semantic build drops them.
type unknownAST struct {
	Keyword string   `parser:"@Ident"`
	Fields  []string `parser:"@(Ident|Int)* EOL"`
}
