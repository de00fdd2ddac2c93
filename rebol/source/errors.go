package source

import "errors"

var (
	// ErrSyntax is the base error every lexer failure wraps; the wrapped
	// message carries the line number and detail (§7 category "syntax").
	ErrSyntax = errors.New("source: syntax error")

	// ErrBadEncoding is returned when input is neither UTF-8, BOM-marked
	// UTF-16, nor decodable Latin-1.
	ErrBadEncoding = errors.New("source: undecodable input encoding")

	// ErrBadHeader is returned when a REBOL [...] header block is not
	// set-word/value pairs.
	ErrBadHeader = errors.New("source: malformed script header")
)
