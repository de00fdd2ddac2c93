// Package parse implements PARSE (§4.7): a recursive combinator matcher
// over a BLOCK!/STRING!/BINARY! input, sharing the evaluator's binding
// model so rule words resolve exactly like ordinary code.
//
// Grounded on pkg/ast's builder (tree.go/builder.go): a rule is parsed
// into a small tagged-node tree the same way pkg/ast builds a node tree
// from tokens, and matching walks that tree with position save/restore
// for backtracking, the same traversal shape pkg/ast's child-walk uses.
// The lexer's token classification a rule element starts from follows
// internal/regtext/lexer.go's state-machine-over-bytes style.
package parse
