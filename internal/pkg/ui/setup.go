package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aicommit/aicommit/internal/pkg/config"
	"github.com/aicommit/aicommit/internal/pkg/message"
	"github.com/charmbracelet/huh"
)

// SetupAnswers holds the values collected by the setup wizard.
type SetupAnswers struct {
	APIKey string
	Model  string
	Format string
}

// validateAPIKey rejects obviously truncated keys.
func validateAPIKey(s string) error {
	if len(strings.TrimSpace(s)) < 5 {
		return fmt.Errorf("api key too short")
	}
	return nil
}

func validateModel(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	return nil
}

// RunInteractiveSetup asks for the OpenRouter key, model and output format
// and writes them to the configuration file.
func RunInteractiveSetup(out io.Writer, cfgMgr config.Manager) error {
	fmt.Fprintln(out, "Let's set up aicommit!")
	fmt.Fprintln(out)

	answers := SetupAnswers{
		Model:  config.DefaultModel,
		Format: message.FormatStrictSingleLine.String(),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("OpenRouter API Key").
				Description("Leave empty to keep using " + config.APIKeyEnvVar).
				Value(&answers.APIKey).
				Password(true).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					return validateAPIKey(s)
				}),
			huh.NewInput().
				Title("Model").
				Description("OpenRouter model identifier").
				Value(&answers.Model).
				Validate(validateModel),
			huh.NewSelect[string]().
				Title("Message format").
				Options(
					huh.NewOption("Single line (default)", message.FormatStrictSingleLine.String()),
					huh.NewOption("Subject with bullet body", message.FormatConventionalWithBody.String()),
				).
				Value(&answers.Format),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if err := SaveSetup(cfgMgr, answers); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nConfiguration saved to %s\n", cfgMgr.GetConfigPath())
	return nil
}

// SaveSetup creates the configuration file if needed and stores the answers.
func SaveSetup(cfgMgr config.Manager, answers SetupAnswers) error {
	if _, err := message.ParseFormat(answers.Format); err != nil {
		return err
	}
	if err := validateModel(answers.Model); err != nil {
		return err
	}

	// An existing file is updated in place
	if err := cfgMgr.Init(); err != nil && !errors.Is(err, config.ErrConfigExists) {
		return err
	}

	if answers.APIKey != "" {
		if err := cfgMgr.Set("provider.api_key", strings.TrimSpace(answers.APIKey)); err != nil {
			return fmt.Errorf("failed to set api key: %w", err)
		}
	}
	if err := cfgMgr.Set("provider.model", strings.TrimSpace(answers.Model)); err != nil {
		return fmt.Errorf("failed to set model: %w", err)
	}
	if err := cfgMgr.Set("output.format", answers.Format); err != nil {
		return fmt.Errorf("failed to set format: %w", err)
	}
	return nil
}
