// Package mold renders cells back to source text. MOLD produces a form
// the lexer can re-read into an equal value (modulo bindings and
// non-reloadable types such as handles and ports); FORM produces the
// human display form (§6 "Value molding").
//
// The package is a per-kind dispatch over a shared string builder, the
// same shape as the teacher's hive/printer (one Options struct, one
// entry point, per-format emit functions).
package mold
