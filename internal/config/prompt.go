package config

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
┌─┐┌─┐┌─┐┌─┐┌┬┐┬┌┬┐┌─┐
├─┘├─┤│ ┬├┤  │ ││││├┤
┴  ┴ ┴└─┘└─┘ ┴ ┴┴ ┴└─┘`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	BackendURL string
}

// WithPromptConfig returns an Option that asks for the essential settings
// the first time pagetime runs. Nothing is asked when the config file
// already exists or stdin is not a terminal.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		f, ok := Stdin.(*os.File)
		if !ok || !isatty.IsTerminal(f.Fd()) {
			return nil
		}

		opts, err := promptUser()
		if err != nil {
			return errPrompt.Wrap(err)
		}

		return applyPromptOptions(c, opts)
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		BackendURL: DefaultBackendURL,
	}

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure pagetime for the first time.
Press ENTER to accept the defaults.
Edit the config file with 'pagetime edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backend URL").
				Description("Session summaries are posted to <url>/sessions").
				Value(&opts.BackendURL).
				Validate(validateBackendURL),
		),
	)

	if err := form.Run(); err != nil {
		return opts, err
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) error {
	c.Backend.URL = opts.BackendURL

	return nil
}
