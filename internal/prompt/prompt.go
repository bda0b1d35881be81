// Package prompt provides the line-oriented interaction channel used by the
// console: every question is a blocking Ask that returns one line of input.
//
// Two implementations exist. LineConsole reads plain lines and suits pipes and
// scripted input. FormConsole renders each question as a one-field huh form
// and is picked automatically when stdin and stdout are terminals.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ErrInputClosed is returned once the input stream ends or the user aborts.
// Callers treat it as a fatal abort of the session.
var ErrInputClosed = errors.New("input closed")

// Console is a blocking question/answer channel with an output side for
// listings and echoes. Answers never include the trailing newline.
type Console interface {
	io.Writer
	Ask(ctx context.Context, prompt string) (string, error)
}

// SecretAsker is implemented by consoles that can hide typed input.
type SecretAsker interface {
	AskSecret(ctx context.Context, prompt string) (string, error)
}

// AskSecret asks through c's hidden input when available and falls back to Ask.
func AskSecret(ctx context.Context, c Console, prompt string) (string, error) {
	if s, ok := c.(SecretAsker); ok {
		return s.AskSecret(ctx, prompt)
	}
	return c.Ask(ctx, prompt)
}

// Println writes a line to the console, ignoring write errors like fmt.Println.
func Println(c io.Writer, a ...any) {
	_, _ = fmt.Fprintln(c, a...)
}

// Printf writes formatted text to the console.
func Printf(c io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(c, format, a...)
}

// LineConsole reads answers line by line from in and writes prompts to out.
// Lines are read by a background goroutine so Ask can return on context
// cancellation while a read is pending; a line read after cancellation is
// delivered to the next Ask.
type LineConsole struct {
	reader *bufio.Reader
	out    io.Writer

	once  sync.Once
	lines chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// NewLineConsole creates a LineConsole.
func NewLineConsole(in io.Reader, out io.Writer) *LineConsole {
	return &LineConsole{reader: bufio.NewReader(in), out: out}
}

// Write implements io.Writer.
func (c *LineConsole) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

// Ask writes prompt and blocks for the next line or until ctx is done.
func (c *LineConsole) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := io.WriteString(c.out, prompt); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	c.once.Do(func() {
		c.lines = make(chan lineResult)
		go c.readLines()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r, ok := <-c.lines:
		if !ok {
			return "", ErrInputClosed
		}
		return r.line, r.err
	}
}

// readLines feeds c.lines until the input ends. Lines have no length limit.
func (c *LineConsole) readLines() {
	defer close(c.lines)
	for {
		line, err := c.reader.ReadString('\n')
		if err == nil || line != "" {
			c.lines <- lineResult{line: strings.TrimRight(line, "\r\n")}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.lines <- lineResult{err: fmt.Errorf("%w: %v", ErrInputClosed, err)}
			}
			return
		}
	}
}

// FormConsole asks each question through a single-input huh form.
type FormConsole struct {
	in  io.Reader
	out io.Writer
}

// NewFormConsole creates a FormConsole on the given terminal streams.
func NewFormConsole(in io.Reader, out io.Writer) *FormConsole {
	return &FormConsole{in: in, out: out}
}

// Write implements io.Writer.
func (c *FormConsole) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

// Ask renders prompt as a form title and returns the typed value.
func (c *FormConsole) Ask(ctx context.Context, prompt string) (string, error) {
	return c.run(ctx, prompt, huh.EchoModeNormal)
}

// AskSecret is like Ask but masks the typed characters.
func (c *FormConsole) AskSecret(ctx context.Context, prompt string) (string, error) {
	return c.run(ctx, prompt, huh.EchoModePassword)
}

func (c *FormConsole) run(ctx context.Context, prompt string, mode huh.EchoMode) (string, error) {
	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(strings.TrimSpace(prompt)).
				EchoMode(mode).
				Value(&value),
		),
	).WithInput(c.in).WithOutput(c.out).WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrInputClosed
		}
		return "", err
	}

	// Forms clear themselves; keep the answered question visible like a line prompt.
	_, _ = fmt.Fprintf(c.out, "%s %s\n", strings.TrimSpace(prompt), displayValue(value, mode))
	return value, nil
}

func displayValue(value string, mode huh.EchoMode) string {
	if mode == huh.EchoModePassword {
		return strings.Repeat("*", len(value))
	}
	return value
}

// New picks FormConsole when in and out are both terminals and LineConsole otherwise.
func New(in *os.File, out *os.File) Console {
	if isTerminal(in) && isTerminal(out) {
		return NewFormConsole(in, out)
	}
	return NewLineConsole(in, out)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
