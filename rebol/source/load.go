package source

import (
	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// Header is the parsed REBOL [...] script header (§6 "Load format").
// Fields the loader does not recognize stay available through Fields.
type Header struct {
	Title   string
	Type    string
	Name    string
	Version string

	// Fields holds every header key as loaded, including the ones the
	// named fields above mirror.
	Fields map[string]value.Cell
}

// Result is a fully loaded script: its header (nil if the source had
// none) and its body block, scanned but not yet bound or run.
type Result struct {
	Header *Header
	Body   *value.Series
}

// Load normalizes data to UTF-8, scans it, and splits off a leading
// `REBOL [header]` / `Rebol [header]` if present (§6 "Load format").
func Load(data []byte, syms *symbol.Table) (*Result, error) {
	normalized, err := Normalize(data)
	if err != nil {
		return nil, err
	}
	lx := NewLexer(normalized, syms)
	body, err := lx.ScanAll()
	if err != nil {
		return nil, err
	}

	res := &Result{Body: body}
	if len(body.Cells) >= 2 && isRebolWord(body.Cells[0], syms) &&
		body.Cells[1].BaseKind() == value.KindBlock {
		hdr, herr := parseHeader(body.Cells[1], syms)
		if herr != nil {
			return nil, herr
		}
		res.Header = hdr
		rest := value.NewArraySeries(len(body.Cells) - 2)
		rest.Cells = append(rest.Cells, body.Cells[2:]...)
		res.Body = rest
	}
	return res, nil
}

// LoadAndBind loads data and binds the body against ctx, appending
// slots for the script's set-words (those in nested blocks and groups
// included) first.
func LoadAndBind(data []byte, syms *symbol.Table, ctx *context.Context) (*Result, error) {
	res, err := Load(data, syms)
	if err != nil {
		return nil, err
	}
	if err := GatherSetWords(res.Body.Cells, ctx); err != nil {
		return nil, err
	}
	BindDeep(res.Body.Cells, context.Chain{ctx})
	return res, nil
}

func isRebolWord(c value.Cell, syms *symbol.Table) bool {
	if c.BaseKind() != value.KindWord || c.Quoted() {
		return false
	}
	return syms.Spelling(symbol.ID(c.Extra.Bits)) == "REBOL" ||
		syms.Spelling(symbol.ID(c.Extra.Bits)) == "Rebol"
}

// parseHeader reads the header block as set-word/value pairs. Values
// are taken literally, not evaluated: a header is data (§6).
func parseHeader(block value.Cell, syms *symbol.Table) (*Header, error) {
	h := &Header{Fields: make(map[string]value.Cell)}
	cells := arrayCells(block)
	for i := 0; i+1 < len(cells); i += 2 {
		if cells[i].BaseKind() != value.KindSetWord {
			return nil, ErrBadHeader
		}
		key := syms.Spelling(symbol.ID(cells[i].Extra.Bits))
		val := cells[i+1]
		h.Fields[key] = val
		switch foldASCII(key) {
		case "title":
			h.Title = headerText(val)
		case "type":
			h.Type = headerText(val)
		case "name":
			h.Name = headerText(val)
		case "version":
			h.Version = headerText(val)
		}
	}
	return h, nil
}

func headerText(c value.Cell) string {
	if s := c.Series(); s != nil {
		return string(s.Bytes)
	}
	return ""
}

func foldASCII(s string) string {
	b := []byte(s)
	for i, ch := range b {
		if ch >= 'A' && ch <= 'Z' {
			b[i] = ch + 32
		}
	}
	return string(b)
}
