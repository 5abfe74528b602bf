// Package console is a line-oriented presenter that plays a quiz over plain
// reader/writer streams.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/vocab"
)

// Console renders quiz state as text lines and reads answers as numbers.
type Console struct {
	out     io.Writer
	in      *bufio.Scanner
	choices []string
	popup   bool
}

var _ quiz.Presenter = (*Console)(nil)

// New creates a Console reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{out: out, in: bufio.NewScanner(in)}
}

func (c *Console) RenderStartScreen(modes []vocab.ModeAvailability) {
	fmt.Fprintln(c.out, "Choose a mode:")
	for _, m := range modes {
		status := fmt.Sprintf("%d questions", m.Questions)
		if !m.Available {
			status = "unavailable"
		}
		fmt.Fprintf(c.out, "  %-10s %s (%s)\n", m.Mode, m.Mode.DisplayName(), status)
	}
}

func (c *Console) RenderPrompt(emoji, description string) {
	fmt.Fprintf(c.out, "\n%s  %s\n", emoji, description)
}

func (c *Console) RenderOptions(choices []string) {
	c.choices = choices
	for i, ch := range choices {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, ch)
	}
}

func (c *Console) RenderProgress(position, total, stars int) {
	fmt.Fprintln(c.out, quiz.FormatProgress(position, total, stars))
}

func (c *Console) RenderPopup(message string, kind quiz.PopupKind) {
	c.popup = true
	fmt.Fprintf(c.out, "\n%s\n", message)
	if kind == quiz.PopupFail {
		fmt.Fprintln(c.out, "[Enter] Try Again")
	} else {
		fmt.Fprintln(c.out, "[Enter] Restart")
	}
}

// Play runs one session of mode on d until it completes, the input ends or
// the player types "q".
func (c *Console) Play(d *quiz.Driver, mode vocab.Mode) error {
	if err := d.StartMode(mode); err != nil {
		return err
	}

	for {
		if c.popup {
			fmt.Fprint(c.out, "> ")
			if !c.in.Scan() {
				d.Quit()
				return c.in.Err()
			}
			c.popup = false
			completed := d.Session().Phase() == quiz.PhaseCompleted
			if completed {
				// The start screen is the CLI itself.
				return nil
			}
			d.Dismiss()
			continue
		}

		fmt.Fprintf(c.out, "Answer [1-%d, q to quit]: ", len(c.choices))
		if !c.in.Scan() {
			d.Quit()
			return c.in.Err()
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "q" || line == "quit" {
			d.Quit()
			fmt.Fprintln(c.out, "Bye!")
			return nil
		}

		choice, ok := c.parseChoice(line)
		if !ok {
			fmt.Fprintf(c.out, "Enter a number from 1 to %d.\n", len(c.choices))
			continue
		}
		if _, err := d.Select(choice); err != nil {
			return err
		}
	}
}

// parseChoice accepts an option number or the option text itself.
func (c *Console) parseChoice(line string) (string, bool) {
	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(c.choices) {
			return "", false
		}
		return c.choices[n-1], true
	}
	for _, ch := range c.choices {
		if ch == line {
			return ch, true
		}
	}
	return "", false
}
