package formtemplater

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	fterrors "github.com/go-sharp/formtemplater/errors"
)

// Prompter hands the authorization URL to the user and returns the redirect
// URL the provider sent them back to.
type Prompter interface {
	PromptForRedirect(ctx context.Context, authURL string) (string, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(ctx context.Context, authURL string) (string, error)

// PromptForRedirect calls f(ctx, authURL).
func (f PrompterFunc) PromptForRedirect(ctx context.Context, authURL string) (string, error) {
	return f(ctx, authURL)
}

// ConsolePrompter prints the authorization URL and reads the pasted redirect
// URL from a single input line.
type ConsolePrompter struct {
	In          io.Reader
	Out         io.Writer
	OpenBrowser bool
	Log         *zap.SugaredLogger
}

// NewConsolePrompter returns a prompter on stdin and stdout.
func NewConsolePrompter(openBrowser bool, log *zap.SugaredLogger) *ConsolePrompter {
	return &ConsolePrompter{In: os.Stdin, Out: os.Stdout, OpenBrowser: openBrowser, Log: log}
}

// PromptForRedirect blocks until a line was read or ctx is done.
func (p *ConsolePrompter) PromptForRedirect(ctx context.Context, authURL string) (string, error) {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	in := p.In
	if in == nil {
		in = os.Stdin
	}
	log := p.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	fmt.Fprintln(out, "Please go here and authorize,", authURL)
	if p.OpenBrowser {
		if err := browserOpener(authURL); err != nil {
			log.Warnw("Could not open browser", "error", err)
		}
	}
	fmt.Fprint(out, "Paste the full redirect URL here: ")

	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(in).ReadString('\n')
		ch <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(out)
		return "", fterrors.ErrPrompt.WithWrappedError(ctx.Err())
	case r := <-ch:
		line := strings.TrimSpace(r.line)
		if r.err != nil && (r.err != io.EOF || line == "") {
			return "", fterrors.ErrPrompt.WithWrappedError(r.err)
		}
		if line == "" {
			return "", fterrors.ErrPrompt
		}
		return line, nil
	}
}
