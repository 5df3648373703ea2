package app

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/pagetime/internal/pathutil"
)

const website = "https://github.com/ayoisaiah/pagetime"

// section renders a heading followed by a template body.
func section(heading, body string) string {
	return pterm.Yellow(heading) + "\n" + body + "\n\n"
}

func helpText() string {
	commands := fmt.Sprintf(
		"{{range .Commands}}{{if not .HideHelp}}   %s{{ `\t`}}{{.Usage}}{{ `\n` }}{{end}}{{end}}",
		pterm.Green("{{join .Names `, `}}"),
	)

	options := fmt.Sprintf(
		"{{range .VisibleFlags}}\t\t{{if .Aliases}}{{range $element := .Aliases}}%s,{{end}}{{end}} %s\n\t\t\t\t{{.Usage}}\n\n{{end}}",
		pterm.Green("-{{$element}}"),
		pterm.Green("--{{.Name}} {{.DefaultText}}"),
	)

	var b strings.Builder

	b.WriteString(section("DESCRIPTION", "\t\t{{.Usage}}"))
	b.WriteString(section(
		"USAGE",
		"\t\t{{.HelpName}} {{if .UsageText}}{{ .UsageText }}{{end}}",
	))
	b.WriteString("{{if .Version}}" + section("VERSION", "\t\t{{.Version}}") + "{{end}}")
	b.WriteString(section("COMMANDS", commands))
	b.WriteString(pterm.Yellow("OPTIONS") + "\n" + options)
	b.WriteString(section("EXAMPLES", examplesHelp()))
	b.WriteString(section("ENVIRONMENTAL VARIABLES", "\t\t"+envHelp()))
	b.WriteString(pterm.Yellow("WEBSITE") + "\n\t\t" + website + "\n")

	return b.String()
}

func examplesHelp() string {
	examples := []string{
		"{{.HelpName}} read --book 42 --page 10 --pages 320",
		"{{.HelpName}} listen --book 7 --track 1 --offset 90500 --rate 1.5",
		"{{.HelpName}} pending",
		"{{.HelpName}} flush",
	}

	return "\t\t" + strings.Join(examples, "\n\t\t")
}

func envHelp() string {
	return `
PAGETIME_NO_COLOR, NO_COLOR: set to any value to avoid printing ANSI escape sequences for color output.

` + pathutil.EnvVar + `: use a separate set of config, database and log files (e.g. "dev").`
}
