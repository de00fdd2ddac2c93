package port

import "errors"

var (
	// ErrNoScheme is returned by Open for an unregistered scheme name.
	ErrNoScheme = errors.New("port: no such scheme")

	// ErrNotOpen is returned by verbs that require an open port (§7
	// taxonomy id "not-open").
	ErrNotOpen = errors.New("port: port is not open")

	// ErrBadSpec is returned when a scheme cannot interpret its open spec.
	ErrBadSpec = errors.New("port: malformed port spec")
)
