// Package prompt collects stored block values interactively for the fields a
// fragment declares.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt: aborted")

// Question is one value to ask for. A question with Options is a single
// choice; otherwise Multiline selects a multi-line editor over a one-line
// input.
type Question struct {
	Message   string
	Help      string
	Default   string
	Options   []string
	Multiline bool
}

// Driver asks questions on some terminal.
type Driver interface {
	Ask(ctx context.Context, q Question) (string, error)
}

type surveyDriver struct {
	opts []survey.AskOpt
}

// NewSurveyDriver returns a Driver backed by survey. opts are passed to every
// prompt, for example survey.WithStdio to keep prompts off stdout.
func NewSurveyDriver(opts ...survey.AskOpt) Driver {
	return surveyDriver{opts: opts}
}

func (d surveyDriver) Ask(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var answer string
	err := survey.AskOne(surveyPrompt(q), &answer, d.opts...)
	switch {
	case errors.Is(err, terminal.InterruptErr):
		return "", ErrAborted
	case err != nil:
		return "", fmt.Errorf("prompt: ask %q: %w", q.Message, err)
	}
	return answer, nil
}

// surveyPrompt maps a question onto a survey prompt. A default that is not
// one of the options is dropped since survey rejects it.
func surveyPrompt(q Question) survey.Prompt {
	switch {
	case len(q.Options) > 0:
		sel := &survey.Select{Message: q.Message, Help: q.Help, Options: q.Options}
		if slices.Contains(q.Options, q.Default) {
			sel.Default = q.Default
		}
		return sel
	case q.Multiline:
		return &survey.Multiline{Message: q.Message, Help: q.Help, Default: q.Default}
	default:
		return &survey.Input{Message: q.Message, Help: q.Help, Default: q.Default}
	}
}
