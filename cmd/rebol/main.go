// Command rebol is the console driver: it runs a script file or an
// expression, or enters a read-eval-print loop, and returns the exit
// codes the embedding process expects — 0 for a normal exit, 1 for a
// reported error, 130 for a halt (Ctrl-C).
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rhencke/rebol-sub017/rebol/boot"
	"github.com/rhencke/rebol-sub017/rebol/eval"
	"github.com/rhencke/rebol-sub017/rebol/logger"
	"github.com/rhencke/rebol-sub017/rebol/mold"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

const (
	exitOK     = 0
	exitError  = 1
	exitHalted = 130
)

var (
	exprFlag    = flag.String("do", "", "evaluate this expression and exit")
	quietFlag   = flag.Bool("q", false, "suppress the banner and result echo")
	verboseFlag = flag.Bool("verbose", false, "log interpreter internals to stderr")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	logger.Init(logger.Options{
		Enabled: *verboseFlag,
		Writer:  os.Stderr,
		Level:   slog.LevelDebug,
	})

	var halted atomic.Bool
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		for range sigc {
			halted.Store(true)
		}
	}()

	rt, err := boot.Boot(boot.Options{
		Halt: halted.Load,
		Out:  os.Stdout,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "boot failed:", err)
		return exitError
	}

	if *exprFlag != "" {
		return runOnce(rt, []byte(*exprFlag))
	}
	if script := flag.Arg(0); script != "" {
		src, rerr := os.ReadFile(script)
		if rerr != nil {
			fmt.Fprintln(os.Stderr, "cannot read script:", rerr)
			return exitError
		}
		return runOnce(rt, src)
	}
	return repl(rt, &halted)
}

// runOnce evaluates one script/expression and maps the outcome to an
// exit code.
func runOnce(rt *boot.Runtime, src []byte) int {
	out, err := rt.Do(src)
	switch {
	case errors.Is(err, eval.ErrHalted):
		return exitHalted
	case err != nil:
		reportError(rt, err)
		return exitError
	}
	if !*quietFlag && !out.IsNull() {
		fmt.Println("==", mold.Mold(rt.Syms, out))
	}
	return exitOK
}

func repl(rt *boot.Runtime, halted *atomic.Bool) int {
	if !*quietFlag {
		fmt.Println("rebol console (ctrl-d to exit)")
	}
	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(">> ")
		if !in.Scan() {
			return exitOK
		}
		halted.Store(false)
		out, err := rt.DoText(in.Text())
		switch {
		case errors.Is(err, eval.ErrHalted):
			fmt.Println("** halted")
			continue
		case err != nil:
			reportError(rt, err)
			continue
		}
		if !out.IsNull() {
			fmt.Println("==", mold.Mold(rt.Syms, out))
		}
	}
}

// reportError prints category/id/message/near/where for ERROR! values
// and a plain line for host-side failures.
func reportError(rt *boot.Runtime, err error) {
	var ev *value.ErrorValue
	if errors.As(err, &ev) {
		cell := value.Cell{Kind: value.KindError, Flags: value.FlagFirstIsNode,
			Payload: value.Payload{Node: ev}}
		fmt.Fprintln(os.Stderr, mold.Form(rt.Syms, cell))
		return
	}
	fmt.Fprintln(os.Stderr, "**", err)
}
