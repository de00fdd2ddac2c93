package source

import "github.com/rhencke/rebol-sub017/rebol/context"

func newTestContext() *context.Context {
	return context.New(context.NewKeylist(), true)
}

func testChain(ctx *context.Context) context.Chain {
	return context.Chain{ctx}
}
