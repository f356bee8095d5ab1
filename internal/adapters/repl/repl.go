package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Dispatcher runs one tokenized command line.
type Dispatcher interface {
	Run(ctx context.Context, args []string) error
}

var errUnterminatedQuote = errors.New("unterminated quote")

// Run reads command lines from in until EOF or exit/quit, dispatching each
// through d. Command errors are printed and the session continues.
func Run(ctx context.Context, d Dispatcher, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "deposito shell")
	fmt.Fprintln(out, "Type a command without the `deposito` prefix, `help` for commands, `exit` to leave.")
	fmt.Fprintln(out, strings.Repeat("-", 70))

	for {
		fmt.Fprint(out, "\n> ")
		input, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return fmt.Errorf("failed to read input: %w", readErr)
		}

		tokens, err := split(input)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		} else if len(tokens) > 0 {
			switch strings.ToLower(tokens[0]) {
			case "exit", "quit":
				fmt.Fprintln(out, "Goodbye!")
				return nil
			case "shell", "init":
				fmt.Fprintf(out, "`%s` is not available inside the shell.\n", tokens[0])
			default:
				if err := d.Run(ctx, tokens); err != nil {
					fmt.Fprintf(out, "Error: %v\n", err)
				}
			}
		}

		if readErr == io.EOF {
			fmt.Fprintln(out)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// split breaks a line on whitespace. Single or double quotes group words into
// one token; there are no escapes.
func split(line string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		quote   rune
		inToken bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, errUnterminatedQuote
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}
