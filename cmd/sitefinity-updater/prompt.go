package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/toothbrush/sitefinity-updater/migrate"
)

// prompter asks for whatever the flags and config file didn't provide.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	log migrate.Logger
}

func newPrompter(in io.Reader, out io.Writer, log migrate.Logger) *prompter {
	return &prompter{
		in:  bufio.NewReader(in),
		out: out,
		log: log,
	}
}

type question struct {
	prompt  string
	missing string // said when the answer is blank, before asking once more
	found   string // said when the value was configured
	secret  bool   // don't echo the configured value
}

// value returns configured if it's set.  Otherwise it asks, and asks one more time if the answer
// is blank.  The result may still be blank; the caller decides whether that's fatal.
func (p *prompter) value(configured string, q question) string {
	if configured != "" {
		if q.secret {
			p.log.Info("%s", q.found)
		} else {
			p.log.Info("%s: %s", q.found, configured)
		}
		return configured
	}

	answer := p.ask(q.prompt)
	if answer == "" {
		p.log.Error("%s", q.missing)
		answer = p.ask(q.prompt)
	}

	return answer
}

// confirm asks a y/n question; only "y" (any case) counts as yes.
func (p *prompter) confirm(prompt string) bool {
	return strings.EqualFold(p.ask(prompt), "y")
}

func (p *prompter) ask(prompt string) string {
	fmt.Fprintln(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		debugLog("couldn't read answer: %v\n", err)
	}
	return strings.TrimSpace(line)
}
