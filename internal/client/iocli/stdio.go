package iocli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio IO поверх произвольных reader/writer, по умолчанию stdin/stdout
type Stdio struct {
	in    *bufio.Reader
	out   io.Writer
	isTTY bool
}

// NewStdio создаёт IO для stdin/stdout
func NewStdio() IO {
	return &Stdio{
		in:    bufio.NewReader(os.Stdin),
		out:   os.Stdout,
		isTTY: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// New создаёт IO для заданных потоков (скрипты, тесты)
func New(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{in: bufio.NewReader(in), out: out}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) Interactive() bool {
	return s.isTTY
}

func (s *Stdio) ReadLine(prompt string) (string, error) {
	// prompt нужен только человеку, в скриптовом режиме не засоряем вывод
	if s.isTTY {
		s.Printf("%s", prompt)
	}
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
