package mold

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/symbol"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// Options controls rendering behavior.
type Options struct {
	// Form selects the human display form: strings lose their quotes,
	// blocks and groups lose their brackets at every nesting level.
	Form bool

	// Limit truncates output at this many bytes when non-zero, with an
	// ellipsis marker, for console display of huge values.
	Limit int
}

// Mold renders c in loadable form.
func Mold(syms *symbol.Table, c value.Cell) string {
	var b strings.Builder
	m := &molder{syms: syms}
	m.emit(&b, c, false)
	return b.String()
}

// Form renders c in human display form.
func Form(syms *symbol.Table, c value.Cell) string {
	var b strings.Builder
	m := &molder{syms: syms, form: true}
	m.emit(&b, c, false)
	return b.String()
}

// MoldOpts renders with explicit options.
func MoldOpts(syms *symbol.Table, c value.Cell, opts Options) string {
	var b strings.Builder
	m := &molder{syms: syms, form: opts.Form}
	m.emit(&b, c, false)
	out := b.String()
	if opts.Limit > 0 && len(out) > opts.Limit {
		return out[:opts.Limit] + "..."
	}
	return out
}

type molder struct {
	syms *symbol.Table
	form bool
}

func (m *molder) emit(b *strings.Builder, c value.Cell, inPath bool) {
	inner, depth := c.Unwrap()
	for i := 0; i < depth; i++ {
		b.WriteByte('\'')
	}

	switch inner.BaseKind() {
	case value.KindNull:
		b.WriteString("null")
	case value.KindBlank:
		b.WriteByte('_')
	case value.KindLogic:
		if inner.AsLogic() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case value.KindInteger:
		b.WriteString(strconv.FormatInt(inner.AsInteger(), 10))
	case value.KindDecimal:
		b.WriteString(formatDecimal(inner.AsDecimal()))
	case value.KindPercent:
		b.WriteString(formatDecimal(inner.AsDecimal()))
		b.WriteByte('%')
	case value.KindMoney:
		b.WriteByte('$')
		b.WriteString(formatDecimal(inner.AsDecimal()))
	case value.KindChar:
		m.emitChar(b, inner.AsChar())
	case value.KindPair:
		x := int32(inner.Payload.Bits >> 32)
		y := int32(inner.Payload.Bits)
		fmt.Fprintf(b, "%dx%d", x, y)
	case value.KindTuple:
		m.emitTuple(b, inner)
	case value.KindTime:
		m.emitTime(b, inner.AsDecimal())
	case value.KindDate:
		m.emitDate(b, inner.Payload.Bits)
	case value.KindString:
		m.emitString(b, textOf(inner))
	case value.KindFile:
		b.WriteByte('%')
		b.WriteString(textOf(inner))
	case value.KindEmail, value.KindURL:
		b.WriteString(textOf(inner))
	case value.KindTag:
		b.WriteByte('<')
		b.WriteString(textOf(inner))
		b.WriteByte('>')
	case value.KindIssue:
		b.WriteByte('#')
		b.WriteString(textOf(inner))
	case value.KindBinary:
		b.WriteString("#{")
		b.WriteString(strings.ToUpper(hex.EncodeToString(bytesOf(inner))))
		b.WriteByte('}')
	case value.KindWord:
		b.WriteString(m.spelling(inner))
	case value.KindSetWord:
		b.WriteString(m.spelling(inner))
		b.WriteByte(':')
	case value.KindGetWord:
		b.WriteByte(':')
		b.WriteString(m.spelling(inner))
	case value.KindRefinement:
		b.WriteByte('/')
		b.WriteString(m.spelling(inner))
	case value.KindBlock:
		m.emitArray(b, inner, "[", "]")
	case value.KindSetBlock:
		m.emitArray(b, inner, "[", "]:")
	case value.KindGroup:
		m.emitArray(b, inner, "(", ")")
	case value.KindPath:
		m.emitPath(b, inner, "", "")
	case value.KindSetPath:
		m.emitPath(b, inner, "", ":")
	case value.KindGetPath:
		m.emitPath(b, inner, ":", "")
	case value.KindObject:
		m.emitObject(b, inner)
	case value.KindError:
		m.emitError(b, inner)
	case value.KindAction:
		m.emitAction(b, inner)
	case value.KindMap:
		m.emitMap(b, inner)
	default:
		// Frames, ports, handles and the stub kinds have no reloadable
		// mold; name the type so the console shows something useful.
		fmt.Fprintf(b, "#[%s]", inner.BaseKind().String())
	}
}

func (m *molder) spelling(c value.Cell) string {
	return m.syms.Spelling(symbol.ID(c.Extra.Bits))
}

func (m *molder) emitArray(b *strings.Builder, c value.Cell, open, close string) {
	if !m.form {
		b.WriteString(open)
	}
	cells := arrayCells(c)
	for i := range cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		m.emit(b, cells[i], false)
	}
	if !m.form {
		b.WriteString(close)
	}
}

func (m *molder) emitPath(b *strings.Builder, c value.Cell, prefix, suffix string) {
	b.WriteString(prefix)
	cells := arrayCells(c)
	for i := range cells {
		if i > 0 {
			b.WriteByte('/')
		}
		m.emit(b, cells[i], true)
	}
	b.WriteString(suffix)
}

func (m *molder) emitString(b *strings.Builder, s string) {
	if m.form {
		b.WriteString(s)
		return
	}
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`^"`)
		case '^':
			b.WriteString("^^")
		case '\n':
			b.WriteString("^/")
		case '\t':
			b.WriteString("^-")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

func (m *molder) emitChar(b *strings.Builder, r rune) {
	if m.form {
		b.WriteRune(r)
		return
	}
	b.WriteString(`#"`)
	switch r {
	case '"':
		b.WriteString(`^"`)
	case '^':
		b.WriteString("^^")
	case '\n':
		b.WriteString("^/")
	case '\t':
		b.WriteString("^-")
	default:
		if r < 0x20 {
			fmt.Fprintf(b, "^(%02X)", r)
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

func (m *molder) emitTuple(b *strings.Builder, c value.Cell) {
	n := int(c.Extra.Bits)
	if n < 2 {
		n = 3
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(int(c.Payload.Bits >> (8 * i) & 0xFF)))
	}
}

func (m *molder) emitTime(b *strings.Builder, secs float64) {
	neg := secs < 0
	if neg {
		b.WriteByte('-')
		secs = -secs
	}
	h := int(secs) / 3600
	min := (int(secs) % 3600) / 60
	rem := secs - float64(h*3600+min*60)
	fmt.Fprintf(b, "%d:%02d", h, min)
	if rem != 0 {
		if rem == float64(int(rem)) {
			fmt.Fprintf(b, ":%02d", int(rem))
		} else {
			fmt.Fprintf(b, ":%s", strconv.FormatFloat(rem, 'f', -1, 64))
		}
	}
}

func (m *molder) emitDate(b *strings.Builder, serial uint64) {
	year := serial / 372
	mon := serial % 372 / 31
	day := serial % 31
	fmt.Fprintf(b, "%d-%s-%d", day+1, titleMonth(int(mon)), year)
}

func titleMonth(i int) string {
	names := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	if i < 0 || i >= len(names) {
		return "Jan"
	}
	return names[i]
}

func (m *molder) emitObject(b *strings.Builder, c value.Cell) {
	ctx, ok := c.Payload.Node.(*context.Context)
	if !ok {
		b.WriteString("make object! []")
		return
	}
	b.WriteString("make object! [")
	first := true
	for i, key := range ctx.Keylist.Keys {
		if key.Sym == symbol.SymSelf {
			continue
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(m.syms.Spelling(key.Sym))
		b.WriteString(": ")
		m.emit(b, ctx.Values[i], false)
	}
	b.WriteByte(']')
}

func (m *molder) emitError(b *strings.Builder, c value.Cell) {
	ev := c.AsError()
	if ev == nil {
		b.WriteString("make error! []")
		return
	}
	if m.form {
		fmt.Fprintf(b, "** %s error (%s): %s", ev.Category, ev.ID, ev.Message)
		if ev.Where != "" {
			fmt.Fprintf(b, "\n** Where: %s", ev.Where)
		}
		if ev.Near != "" {
			fmt.Fprintf(b, "\n** Near: %s", ev.Near)
		}
		return
	}
	fmt.Fprintf(b, "make error! [type: '%s id: '%s message: %q]", ev.Category, ev.ID, ev.Message)
}

func (m *molder) emitAction(b *strings.Builder, c value.Cell) {
	if d, ok := c.Payload.Node.(context.Dispatcher); ok && d.Label() != "" {
		fmt.Fprintf(b, "#[action! %s]", d.Label())
		return
	}
	b.WriteString("#[action!]")
}

func (m *molder) emitMap(b *strings.Builder, c value.Cell) {
	b.WriteString("make map! [")
	cells := arrayCells(c)
	for i := range cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		m.emit(b, cells[i], false)
	}
	b.WriteByte(']')
}

func formatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func arrayCells(c value.Cell) []value.Cell {
	s := c.Series()
	if s == nil {
		return nil
	}
	return s.Cells[c.Payload.Index:]
}

func textOf(c value.Cell) string {
	s := c.Series()
	if s == nil {
		return ""
	}
	return string(s.Bytes)
}

func bytesOf(c value.Cell) []byte {
	s := c.Series()
	if s == nil {
		return nil
	}
	return s.Bytes
}
