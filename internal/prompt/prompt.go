package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Question describes a single prompt. Validate may be nil.
type Question struct {
	Message  string
	Default  string
	Validate func(answer string) error
}

// Prompter collects validated answers from the user.
type Prompter interface {
	Input(q Question) (string, error)
	Password(q Question) (string, error)
	Select(q Question, choices []string) (int, error)
	Confirm(message string, def bool) (bool, error)
}

// ErrNoInput is returned when the input stream ends before an answer is given.
var ErrNoInput = errors.New("no more input")

var (
	questionMark = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Line prompts one question per line on w and reads answers from r.
type Line struct {
	reader *bufio.Reader
	w      io.Writer
	fd     int
	tty    bool
}

// NewLine returns a Line prompter. When r is a terminal, passwords are read
// without echo.
func NewLine(r io.Reader, w io.Writer) *Line {
	l := &Line{reader: bufio.NewReader(r), w: w, fd: -1}
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		l.fd = int(f.Fd())
		l.tty = true
	}
	return l
}

// Input asks a free-text question, re-asking until Validate accepts the answer.
func (l *Line) Input(q Question) (string, error) {
	for {
		l.ask(q.Message, q.Default)
		answer, err := l.readLine()
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = q.Default
		}
		if l.accept(q, answer) {
			return answer, nil
		}
	}
}

// Password is like Input but does not echo the answer on a terminal. The
// default is never shown.
func (l *Line) Password(q Question) (string, error) {
	hint := ""
	if q.Default != "" {
		hint = "keep default"
	}
	for {
		l.ask(q.Message, hint)
		var (
			answer string
			err    error
		)
		if l.tty {
			var raw []byte
			raw, err = term.ReadPassword(l.fd)
			fmt.Fprintln(l.w)
			answer = strings.TrimSpace(string(raw))
		} else {
			answer, err = l.readLine()
		}
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = q.Default
		}
		if l.accept(q, answer) {
			return answer, nil
		}
	}
}

// Select presents a numbered list and returns the chosen index. Default, when
// set, is the 1-based number used on an empty answer.
func (l *Line) Select(q Question, choices []string) (int, error) {
	if len(choices) == 0 {
		return 0, fmt.Errorf("%s: nothing to choose from", q.Message)
	}
	for {
		fmt.Fprintf(l.w, "%s %s\n", questionMark.Render("?"), q.Message)
		for i, c := range choices {
			fmt.Fprintf(l.w, "  %d) %s\n", i+1, c)
		}
		l.ask(fmt.Sprintf("Enter number [1-%d]", len(choices)), q.Default)

		answer, err := l.readLine()
		if err != nil {
			return 0, err
		}
		if answer == "" {
			answer = q.Default
		}
		num, convErr := strconv.Atoi(answer)
		if convErr != nil || num < 1 || num > len(choices) {
			l.complain(fmt.Sprintf("invalid selection %q: choose 1-%d", answer, len(choices)))
			continue
		}
		return num - 1, nil
	}
}

// Confirm asks a yes/no question.
func (l *Line) Confirm(message string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(l.w, "%s %s %s ", questionMark.Render("?"), message, hintStyle.Render("("+hint+")"))
		answer, err := l.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		l.complain("please answer yes or no")
	}
}

func (l *Line) ask(message, def string) {
	if def != "" {
		fmt.Fprintf(l.w, "%s %s %s: ", questionMark.Render("?"), message, hintStyle.Render("("+def+")"))
		return
	}
	fmt.Fprintf(l.w, "%s %s: ", questionMark.Render("?"), message)
}

func (l *Line) accept(q Question, answer string) bool {
	if q.Validate == nil {
		return true
	}
	if err := q.Validate(answer); err != nil {
		l.complain(err.Error())
		return false
	}
	return true
}

func (l *Line) complain(msg string) {
	fmt.Fprintf(l.w, "%s\n", errorStyle.Render(">> "+msg))
}

// readLine returns the next trimmed line. A final line without a trailing
// newline is still returned; only a bare EOF is an error.
func (l *Line) readLine() (string, error) {
	line, err := l.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
