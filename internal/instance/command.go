package instance

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrUnknownCommand = errors.New("instance: unknown command")

type Kind int

const (
	New Kind = iota + 1
	Open
)

// Command is one request sent from a secondary process to the primary.
type Command struct {
	Kind Kind
	Path string
}

// String is the wire form: "New" or "Open <absolute path>".
func (c Command) String() string {
	switch c.Kind {
	case New:
		return "New"
	case Open:
		return "Open " + c.Path
	default:
		return fmt.Sprintf("Unknown(%d)", int(c.Kind))
	}
}

func Parse(line string) (Command, error) {
	line = strings.TrimRight(line, "\r\n")
	switch {
	case line == "New":
		return Command{Kind: New}, nil
	case strings.HasPrefix(line, "Open "):
		path := line[len("Open "):]
		if path == "" {
			return Command{}, fmt.Errorf("%w: open without path", ErrUnknownCommand)
		}
		return Command{Kind: Open, Path: path}, nil
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}
}

// CommandsFromArgs turns command-line arguments into requests. Paths are made
// absolute here because the primary may run in another directory.
func CommandsFromArgs(args []string) ([]Command, error) {
	if len(args) == 0 {
		return []Command{{Kind: New}}, nil
	}
	out := make([]Command, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", arg, err)
		}
		out = append(out, Command{Kind: Open, Path: abs})
	}
	return out, nil
}
