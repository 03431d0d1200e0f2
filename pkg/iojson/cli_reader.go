package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNoInput is returned when no file is named and input is an interactive
// terminal.
var ErrNoInput = errors.New("no input provided (stdin is a terminal); use -f or pipe JSON input")

// FileReader decodes a T from the file named by its -f flag, falling back to
// the command's input stream. "-" names the input stream explicitly.
type FileReader[T any] struct {
	path string
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to a JSON input file (reads stdin when omitted)",
		TakesFile:   true,
		Destination: &fr.path,
	}
}

// Read decodes one JSON document, rejecting unknown fields. in is usually
// cmd.Root().Reader; nil means os.Stdin.
func (fr *FileReader[T]) Read(in io.Reader) (T, error) {
	var input T

	src, err := fr.source(in)
	if err != nil {
		return input, err
	}
	if c, ok := src.(io.Closer); ok && src != in {
		defer func() { _ = c.Close() }()
	}

	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}
	return input, nil
}

func (fr *FileReader[T]) source(in io.Reader) (io.Reader, error) {
	if fr.path != "" && fr.path != "-" {
		f, err := os.Open(fr.path)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		return f, nil
	}

	if in == nil {
		in = os.Stdin
	}
	if f, ok := in.(*os.File); ok && fr.path == "" && term.IsTerminal(int(f.Fd())) {
		return nil, ErrNoInput
	}
	return in, nil
}
