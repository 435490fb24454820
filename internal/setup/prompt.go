package setup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Prompter asks the questions Install and Uninstall cannot answer from
// flags.
type Prompter interface {
	SelectMode() (InstallMode, error)
	Input(title, defaultVal string) (string, error)
}

// defaultPrompter uses huh forms on a terminal and plain line prompts
// otherwise, so piped input still works.
func defaultPrompter(in io.Reader, out io.Writer) Prompter {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return formPrompter{}
	}
	return NewLinePrompter(in, out)
}

type formPrompter struct{}

func (formPrompter) SelectMode() (InstallMode, error) {
	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Installation mode").
				Options(
					huh.NewOption(ModeSystem.Describe(), ModeSystem.String()),
					huh.NewOption(ModeUser.Describe(), ModeUser.String()),
				).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return 0, fmt.Errorf("selecting install mode: %w", err)
	}
	return ParseMode(selected)
}

func (formPrompter) Input(title, defaultVal string) (string, error) {
	var val string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(defaultVal).
				Value(&val),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(title), err)
	}
	return orDefault(val, title, defaultVal)
}

// LinePrompter reads answers line by line.
type LinePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewLinePrompter returns a Prompter reading from in and printing to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{reader: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) SelectMode() (InstallMode, error) {
	fmt.Fprintln(p.out, "Installation mode:")
	fmt.Fprintf(p.out, "  [1] %s\n", ModeSystem.Describe())
	fmt.Fprintf(p.out, "  [2] %s\n", ModeUser.Describe())
	fmt.Fprint(p.out, "> ")
	choice, _ := p.reader.ReadString('\n')
	choice = strings.TrimSpace(choice)
	switch choice {
	case "1":
		return ModeSystem, nil
	case "2":
		return ModeUser, nil
	default:
		return 0, fmt.Errorf("invalid choice %q", choice)
	}
}

func (p *LinePrompter) Input(title, defaultVal string) (string, error) {
	if defaultVal != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", title, defaultVal)
	} else {
		fmt.Fprintf(p.out, "%s: ", title)
	}
	val, _ := p.reader.ReadString('\n')
	return orDefault(val, title, defaultVal)
}

func orDefault(val, title, defaultVal string) (string, error) {
	val = strings.TrimSpace(val)
	if val != "" {
		return val, nil
	}
	if defaultVal == "" {
		return "", fmt.Errorf("%s is required", strings.ToLower(title))
	}
	return defaultVal, nil
}
