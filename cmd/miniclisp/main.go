// Command miniclisp is the interactive host around the scm core: it
// reads a line, hands it to the core, and prints what comes back. The
// prompt loop, history and signal handling are host concerns spec.md
// explicitly scopes out of the core — this file is the "external
// collaborator" the core's interfaces are written against.
package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/dc0d/onexit"
	"github.com/mwopitz/miniclisp/scm"
)

const (
	newPrompt  = "\033[32m>\033[0m "
	contPrompt = "\033[32m.\033[0m "
)

func main() {
	it := scm.NewInterp()

	onexit.Register(func() {
		fmt.Printf("Bye. %d expression(s) evaluated.\n", it.EvalCount)
	})

	l, err := readline.NewEx(&readline.Config{
		Prompt:            newPrompt,
		HistoryFile:       ".miniclisp-history.tmp",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()
	l.CaptureExitSignal()

	pending := ""
	for {
		line, err := l.Readline()
		line = pending + line
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				break
			}
			pending = ""
			l.SetPrompt(newPrompt)
			continue
		} else if err == io.EOF {
			break
		} else if err != nil {
			panic(err)
		}
		if line == "" {
			continue
		}

		v, err := it.Read(line)
		if isUnexpectedEOF(err) {
			pending = line + " "
			l.SetPrompt(contPrompt)
			continue
		}
		pending = ""
		l.SetPrompt(newPrompt)
		if err != nil {
			fmt.Println("read error:", err)
			continue
		}

		// Anti-panic closure, mirroring the teacher's prompt.go: the
		// core never panics on user-triggered conditions (those come
		// back as *scm.EvalError), so a recover() firing here means an
		// internal bug, not bad input — report it and keep the REPL
		// alive rather than taking the whole process down.
		func() {
			defer func() {
				if r := recover(); r != nil {
					fmt.Println("panic:", r)
				}
			}()

			it.EvalCount++
			result, err := it.Eval(v, it.Global)
			if err != nil {
				fmt.Println("eval error:", err)
				return
			}
			if result == scm.Void {
				return
			}
			fmt.Print(it.Print(scm.Verbose, result))
		}()
	}
}

func isUnexpectedEOF(err error) bool {
	return errors.Is(err, scm.ErrUnexpectedEOF)
}
