// Package prompt asks the CLI user to approve destructive actions such as
// deleting the stored API key or resetting settings.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNotInteractive is returned when a confirmation is needed but stdin is
// not a terminal.
var ErrNotInteractive = errors.New("stdin is not a terminal: pass -y to confirm")

const maxAttempts = 3

// Confirmer asks a yes/no question. The default answer is no.
type Confirmer struct {
	In            io.Reader
	Out           io.Writer
	IsInteractive func() bool
}

func DefaultConfirmer() Confirmer {
	return Confirmer{
		In:            os.Stdin,
		Out:           os.Stdout,
		IsInteractive: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

// Confirm returns true without asking when force is set. Unrecognized
// answers are asked again a few times before giving up as no.
func (c Confirmer) Confirm(question string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if c.IsInteractive == nil || !c.IsInteractive() {
		return false, ErrNotInteractive
	}
	out := c.Out
	if out == nil {
		out = io.Discard
	}

	r := bufio.NewReader(c.In)
	for i := 0; i < maxAttempts; i++ {
		fmt.Fprintf(out, "%s [y/N]: ", question)
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		if answer, ok := parseAnswer(line); ok {
			return answer, nil
		}
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		fmt.Fprintln(out, "Please answer y or n.")
	}
	return false, nil
}

func parseAnswer(line string) (answer, ok bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, true
	case "", "n", "no":
		return false, true
	}
	return false, false
}
