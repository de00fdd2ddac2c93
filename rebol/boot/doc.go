// Package boot assembles a runnable interpreter: the symbol table, the
// lib and system contexts, the garbage collector roots, and the native
// action set (arithmetic, control flow, series operations, the action
// combinators of §4.4, PARSE, and port verbs). Everything an embedding
// needs is behind Boot and the returned Runtime.
package boot
