package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// Console prompts a human over a reader/writer pair.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole returns a console reading answers from in and writing prompts
// to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// InteractiveStdin reports whether stdin is attached to a terminal. Commands
// use it to decide between console prompting and scripted defaults.
func InteractiveStdin() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ReadLine prints the question and returns the trimmed answer line.
func (c *Console) ReadLine(question string) (string, error) {
	fmt.Fprint(c.out, question)
	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	if line == "" && errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. Anything other than an answer starting
// with "y" counts as no.
func (c *Console) Confirm(question string) (bool, error) {
	answer, err := c.ReadLine(question + " (y/n): ")
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}

// ConfirmExact asks for a verbatim phrase, used before destructive bulk
// operations.
func (c *Console) ConfirmExact(question, phrase string) (bool, error) {
	answer, err := c.ReadLine(question)
	if err != nil {
		return false, err
	}
	return answer == phrase, nil
}

// SelectIndexes asks for a comma-separated index list.
func (c *Console) SelectIndexes(question string) ([]int, error) {
	answer, err := c.ReadLine(question)
	if err != nil {
		return nil, err
	}
	return ParseIndexList(answer)
}

// ParseIndexList parses a comma-separated list of integer indexes.
func ParseIndexList(input string) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.New("no indexes supplied")
	}
	parts := strings.Split(input, ",")
	indexes := make([]int, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid index %q", strings.TrimSpace(part))
		}
		indexes = append(indexes, idx)
	}
	return indexes, nil
}
