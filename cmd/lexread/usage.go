package main

import "strings"

// usageBody lists subcommands and flags; each template adds its own
// synopsis lines on top.
const usageBody = `{{if .HasAvailableSubCommands}}Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}  {{rpad .Name .NamePadding }} {{.Short}}
{{end}}{{end}}{{end}}
{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}
{{if .HasAvailableInheritedFlags}}Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}
{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.
{{end}}`

func usageTemplate(synopsis ...string) string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	for _, line := range synopsis {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(usageBody)
	return b.String()
}

var (
	rootUsageTemplate = usageTemplate(
		"lexread [text...] [flags]",
		"{{.UseLine}}",
		"{{if .HasAvailableSubCommands}}{{.CommandPath}} [command]{{end}}",
	)
	groupUsageTemplate      = usageTemplate("{{.UseLine}}", "{{.CommandPath}} [command]")
	subcommandUsageTemplate = usageTemplate("{{.UseLine}}")
)
