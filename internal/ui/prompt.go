package ui

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// IsAborted reports whether err came from the user cancelling a prompt
func IsAborted(err error) bool {
	return errors.Is(err, huh.ErrUserAborted)
}

// sanitizeInput removes null bytes and other invisible control characters from input
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return -1
		}
		return r
	}, s)
}

// PromptForDomain prompts the user for the domain to extract
func PromptForDomain() (string, error) {
	var domain string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter domain to extract URLs from").
				Description("e.g. example.com").
				Placeholder("example.com").
				Value(&domain).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("domain cannot be empty")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}

	return strings.TrimSpace(sanitizeInput(domain)), nil
}

// PromptForFormat asks for the output format, defaulting to csv
func PromptForFormat() (string, error) {
	format := "csv"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output format").
				Options(
					huh.NewOption("CSV (Excel-friendly)", "csv"),
					huh.NewOption("JSON (Developer-friendly)", "json"),
					huh.NewOption("TXT (Simple list)", "txt"),
				).
				Value(&format),
		),
	)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}

	return format, nil
}

// RunWithSpinner runs fn behind a spinner with the given title
func RunWithSpinner(title string, fn func()) error {
	return spinner.New().
		Title(title).
		Action(fn).
		Run()
}

// WaitForExit blocks until the user presses enter
func WaitForExit() {
	fmt.Print("\nPress Enter to exit...")
	reader := bufio.NewReader(os.Stdin)
	_, _ = reader.ReadString('\n')
}
