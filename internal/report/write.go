package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jcs "github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// WriteText renders the summary in plain text.
func WriteText(w io.Writer, s Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n--- Test Summary ---\n")
	fmt.Fprintf(&b, "Total tests: %d\n", s.Total)
	fmt.Fprintf(&b, "Passed: %d\n", s.Passed)
	fmt.Fprintf(&b, "Failed: %d\n", s.FailureCount())
	if s.Aborted {
		fmt.Fprintf(&b, "Run aborted after %d of %d cases\n", s.Total, s.Planned)
	}
	if len(s.Failures) > 0 {
		fmt.Fprintf(&b, "\n--- Failed Cases ---\n")
		for _, f := range s.Failures {
			writeRecord(&b, f)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRecord(b *strings.Builder, f FailureRecord) {
	fmt.Fprintf(b, "Case:     #%d (%s, %s)\n", f.Index+1, f.Class, f.Kind)
	fmt.Fprintf(b, "Input:    %s\n", f.Input)
	fmt.Fprintf(b, "Expected: %s\n", f.Expected)
	fmt.Fprintf(b, "Actual:   %s\n", f.Actual)
	if f.Diagnostic != "" {
		fmt.Fprintf(b, "Stderr:   %s\n", f.Diagnostic)
	}
	fmt.Fprintf(b, "%s\n", strings.Repeat("-", 20))
}

// MarshalCanonical encodes the summary as RFC 8785 canonical JSON, so two
// reports of the same run compare byte for byte.
func MarshalCanonical(s Summary) ([]byte, error) {
	if s.Failures == nil {
		s.Failures = []FailureRecord{}
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	out, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicalize report: %w", err)
	}
	return out, nil
}

// WriteJSONFile writes the canonical JSON report to path, creating parent
// directories as needed.
func WriteJSONFile(path string, s Summary) error {
	data, err := MarshalCanonical(s)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
