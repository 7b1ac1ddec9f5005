package tui

import (
	"context"

	"github.com/pterm/pterm"
)

// Prompter asks the onboarding questions with pterm's interactive printers.
// It implements onboarding.Prompter.
type Prompter struct{}

// NewPrompter creates a terminal prompter
func NewPrompter() *Prompter {
	return &Prompter{}
}

// Select shows an arrow-key menu of choices
func (p *Prompter) Select(ctx context.Context, prompt string, choices []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return pterm.DefaultInteractiveSelect.WithDefaultText(prompt).WithOptions(choices).Show()
}

// Input reads a line of free text
func (p *Prompter) Input(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return pterm.DefaultInteractiveTextInput.WithDefaultText(prompt).Show()
}

// Say prints a message from the dealer
func (p *Prompter) Say(message string) {
	pterm.Info.Println(message)
}

// Announce prints a boxed message, used for the final result
func Announce(title, body string) {
	pterm.DefaultBox.
		WithTitle(pterm.LightGreen(title)).
		WithTitleTopCenter().
		WithHorizontalPadding(4).
		Println(body)
}

// DisableStyling turns off pterm colours for plain output
func DisableStyling() {
	pterm.DisableStyling()
}
