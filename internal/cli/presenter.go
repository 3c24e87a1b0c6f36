// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//   - Format* functions return a formatted string without performing I/O.

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/bigcheck/internal/config"
	"github.com/agbru/bigcheck/internal/format"
	"github.com/agbru/bigcheck/internal/report"
	"github.com/agbru/bigcheck/internal/ui"
)

// DisplayExecutionConfig prints the effective run configuration before the
// first case runs.
func DisplayExecutionConfig(out io.Writer, cfg config.AppConfig, runID string) {
	ops := make([]string, len(cfg.Operators))
	for i, op := range cfg.Operators {
		ops[i] = string(op)
	}
	kinds := make([]string, len(cfg.OperandKinds))
	for i, k := range cfg.OperandKinds {
		kinds[i] = k.String()
	}

	label := func(s string) string { return ui.Colorize(ui.ColorGrey(), fmt.Sprintf("%-12s", s)) }
	fmt.Fprintf(out, "%s--- Execution Configuration ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "%s %s\n", label("Subject:"), ui.Colorize(ui.ColorBlue(), strings.Join(append([]string{cfg.Subject}, cfg.SubjectArgs...), " ")))
	if len(cfg.Replay) > 0 {
		fmt.Fprintf(out, "%s %d explicit\n", label("Cases:"), len(cfg.Replay))
	} else {
		fmt.Fprintf(out, "%s %s (max %d digits)\n", label("Cases:"), format.FormatNumberString(fmt.Sprint(cfg.Cases)), cfg.MaxDigits)
	}
	fmt.Fprintf(out, "%s %s\n", label("Operators:"), strings.Join(ops, " "))
	fmt.Fprintf(out, "%s %s\n", label("Kinds:"), strings.Join(kinds, ", "))
	fmt.Fprintf(out, "%s %s\n", label("Timeout:"), format.FormatExecutionDuration(cfg.Timeout))
	fmt.Fprintf(out, "%s %d\n", label("Seed:"), cfg.Seed)
	fmt.Fprintf(out, "%s %s\n", label("Oracle:"), cfg.Oracle)
	fmt.Fprintf(out, "%s %s\n\n", label("Run ID:"), runID)
}

// FormatVerdict returns the one-line banner title for a summary.
func FormatVerdict(s report.Summary) string {
	switch {
	case s.Aborted && s.Total < s.Planned:
		return fmt.Sprintf("RUN ABORTED after %d of %d cases, %d failing", s.Total, s.Planned, s.FailureCount())
	case s.AllPassed():
		return fmt.Sprintf("ALL %s CASES PASSED", format.FormatNumberString(fmt.Sprint(s.Total)))
	case s.Total == 0:
		return "NO CASES RUN"
	}
	return fmt.Sprintf("%d OF %d CASES FAILED", s.FailureCount(), s.Total)
}

// FormatBreakdown splits the failures by outcome.
func FormatBreakdown(s report.Summary) string {
	return fmt.Sprintf("%d mismatch, %d crash, %d timeout", s.Failed, s.Crashed, s.TimedOut)
}

// DisplaySummary prints the verdict banner followed by the plain-text
// summary and failure records.
func DisplaySummary(out io.Writer, s report.Summary) error {
	details := []string{
		fmt.Sprintf("seed %d · oracle %s · %s", s.Seed, s.Oracle, format.FormatExecutionDuration(s.Elapsed)),
	}
	if s.FailureCount() > 0 {
		details = append(details, FormatBreakdown(s))
	}
	fmt.Fprintln(out, ui.RenderBanner(FormatVerdict(s), s.AllPassed(), details...))
	if err := report.WriteText(out, s); err != nil {
		return err
	}
	if s.FailureCount() > 0 {
		fmt.Fprintf(out, "Reproduce with: --seed %d -n %d\n", s.Seed, s.Planned)
	}
	return nil
}

// FormatQuietSummary is the single-line summary printed in quiet mode.
func FormatQuietSummary(s report.Summary) string {
	status := "PASS"
	if !s.AllPassed() {
		status = "FAIL"
	}
	return fmt.Sprintf("%s %d/%d seed=%d", status, s.Passed, s.Total, s.Seed)
}

// DisplayQuietSummary writes FormatQuietSummary to out.
func DisplayQuietSummary(out io.Writer, s report.Summary) {
	fmt.Fprintln(out, FormatQuietSummary(s))
}
