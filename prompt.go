package scriptutil

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"strconv"
	"strings"
)

var (
	ErrChoiceNotANumber = errors.New("choice must be a number")
	ErrChoiceOutOfRange = errors.New("choice out of range")
)

// Prompter is the line-oriented user-prompt collaborator
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

type PrompterArgs struct {
	In  io.Reader
	Out io.Writer
}

// NewPrompter creates a Prompter; nil In/Out default to stdin/stdout
func NewPrompter(args PrompterArgs) *Prompter {
	if args.In == nil {
		args.In = os.Stdin
	}
	if args.Out == nil {
		args.Out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(args.In),
		out: args.Out,
	}
}

// Ask displays prompt and returns one line of user input, newline stripped
func (p *Prompter) Ask(prompt string) (answer string, err error) {
	_, err = fmt.Fprint(p.out, prompt)
	if err != nil {
		goto end
	}
	answer, err = p.in.ReadString('\n')
	if err != nil && (answer == "" || err != io.EOF) {
		goto end
	}
	err = nil
	answer = strings.TrimSuffix(strings.TrimSuffix(answer, "\n"), "\r")
end:
	return answer, err
}

// Confirm asks for a yes/no response as 'y' or 'yes' (case-insensitive),
// asking again until it gets one of y/yes/n/no.
func (p *Prompter) Confirm(prompt string) (confirmed bool, err error) {
	var answer string

	for {
		answer, err = p.Ask(prompt)
		if err != nil {
			goto end
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			confirmed = true
			goto end
		case "n", "no":
			goto end
		}
	}
end:
	return confirmed, err
}

// Choose displays options as a numbered menu, asks for a number, and
// returns the chosen option. The selection is validated against the
// number of offered options: 1 through len(options) inclusive.
func (p *Prompter) Choose(prompt string, options []string) (choice string, err error) {
	var answer string
	var selection int

	for i, option := range options {
		_, err = fmt.Fprintf(p.out, "  %d: %s\n", i+1, option)
		if err != nil {
			goto end
		}
	}
	answer, err = p.Ask(prompt)
	if err != nil {
		goto end
	}
	selection, err = strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		err = NewErr(ErrChoiceNotANumber, "response", answer)
		goto end
	}
	if selection < 1 || selection > len(options) {
		err = NewErr(ErrChoiceOutOfRange,
			"response", selection,
			"options", len(options),
		)
		goto end
	}
	choice = options[selection-1]
end:
	return choice, err
}

// Username returns the current user's name
func (p *Prompter) Username() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// UID returns the current user's numeric ID, or -1 when unavailable
func (p *Prompter) UID() int {
	u, err := user.Current()
	if err != nil {
		return -1
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return -1
	}
	return uid
}
