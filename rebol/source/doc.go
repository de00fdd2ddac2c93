// Package source turns UTF-8 script text into loaded blocks of cells:
// the lexer for the token grammar (integers, decimals, times, pairs,
// tuples, chars, strings, binaries, files, urls, emails, tags, issues,
// words and their set/get/lit forms, refinements, paths, groups,
// blocks, and the `'` literalization prefix), the REBOL [header]
// loader, and the deep binder that resolves loaded words against a
// context.
//
// Input normalization accepts the encodings scripts show up in on real
// systems (UTF-16 with BOM, Latin-1 legacy files) and converts them to
// the UTF-8 the lexer requires before any scanning happens.
package source
