package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every shell generator reads flagRegistry, so a new flag only needs an
// entry there.
type FlagCompletion struct {
	Long      string   // long flag name without "--"
	Short     string   // short flag without "-"
	Help      string   // description text
	Values    []string // suggested values (nil = boolean or free-form)
	ValueName string   // value label for zsh; empty for boolean flags
	IsFile    bool     // value is a file path
	IsOracle  bool     // values come from the oracle backend list
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "cases", Short: "n", Help: "Number of test cases", ValueName: "count"},
	{Long: "max-digits", Help: "Maximum operand digits", Values: []string{"20", "50", "200", "1000"}, ValueName: "digits"},
	{Long: "subject", Short: "s", Help: "Subject executable", IsFile: true, ValueName: "path"},
	{Long: "subject-arg", Help: "Extra subject argument", ValueName: "arg"},
	{Long: "timeout", Help: "Per-case timeout", Values: []string{"1s", "5s", "15s", "1m"}, ValueName: "duration"},
	{Long: "ops", Help: "Operators under test", Values: []string{"+,-,*,/,%", "/,%", "+,-", "*"}, ValueName: "operators"},
	{Long: "kinds", Help: "Second-operand kinds", Values: []string{"1,2", "1", "2"}, ValueName: "kinds"},
	{Long: "seed", Help: "Generator seed", ValueName: "seed"},
	{Long: "zero-div-tokens", Help: "Division-by-zero tokens", ValueName: "tokens"},
	{Long: "oracle", Help: "Oracle backend", IsOracle: true, ValueName: "backend"},
	{Long: "case", Help: "Replay an explicit case", ValueName: "case"},
	{Long: "report", Help: "JSON report file", IsFile: true, ValueName: "file"},
	{Long: "metrics-addr", Help: "Prometheus listen address", ValueName: "addr"},
	{Long: "config", Help: "YAML config file", IsFile: true, ValueName: "file"},
	{Long: "env-file", Help: "Dotenv file", IsFile: true, ValueName: "file"},
	{Long: "fail-fast", Help: "Stop at the first failure"},
	{Long: "verbose", Short: "v", Help: "Per-case trace"},
	{Long: "quiet", Short: "q", Help: "Summary line only"},
	{Long: "no-color", Help: "Disable colors"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh" or
// "fish"). oracles lists the available oracle backends.
func GenerateCompletion(out io.Writer, shell string, oracles []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(oracles)
	case "zsh":
		script = zshCompletion(oracles)
	case "fish":
		script = fishCompletion(oracles)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func flagValues(f FlagCompletion, oracles []string) []string {
	if f.IsOracle {
		return oracles
	}
	return f.Values
}

func bashCompletion(oracles []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		var patterns []string
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
			patterns = append(patterns, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
			patterns = append(patterns, "-"+f.Short)
		}

		var body string
		switch {
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(flagValues(f, oracles)) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(flagValues(f, oracles), " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(patterns, "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for bigcheck
# Add this to your ~/.bashrc or ~/.bash_completion

_bigcheck_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _bigcheck_completions bigcheck
`, strings.Join(opts, " "), cases.String())
}

func zshCompletion(oracles []string) string {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f, oracles))
	}
	return fmt.Sprintf(`#compdef bigcheck

# Zsh completion script for bigcheck
# Place this file in a directory on $fpath

_bigcheck() {
    _arguments -s \
%s
}

_bigcheck "$@"
`, strings.Join(args, " \\\n"))
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion, oracles []string) string {
	valueSuffix := ""
	switch values := flagValues(f, oracles); {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func fishCompletion(oracles []string) string {
	lines := []string{
		"# Fish completion script for bigcheck",
		"# Add this to ~/.config/fish/completions/bigcheck.fish",
		"",
		"complete -c bigcheck -f",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c bigcheck"}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))
		switch values := flagValues(f, oracles); {
		case f.IsFile:
			parts = append(parts, "-rF")
		case len(values) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(values, " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}
