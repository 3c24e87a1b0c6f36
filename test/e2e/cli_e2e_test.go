package e2e

import (
	"bufio"
	"errors"
	"fmt"
	"math/big"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// subjectModeEnv makes the test binary act as an external subject.
const subjectModeEnv = "BIGCHECK_E2E_SUBJECT"

func TestMain(m *testing.M) {
	if mode := os.Getenv(subjectModeEnv); mode != "" {
		os.Exit(runSubject(mode))
	}
	os.Exit(m.Run())
}

// runSubject answers one protocol request on stdin. "truncating" is correct;
// "crash" always exits non-zero.
func runSubject(mode string) int {
	if mode == "crash" {
		fmt.Fprintln(os.Stderr, "fatal: simulated crash")
		return 134
	}
	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 1<<20), 1<<20)
	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if len(lines) < 4 {
		return 2
	}
	a, _ := new(big.Int).SetString(lines[1], 10)
	b, _ := new(big.Int).SetString(lines[3], 10)
	switch lines[2] {
	case "+":
		fmt.Println(new(big.Int).Add(a, b))
	case "-":
		fmt.Println(new(big.Int).Sub(a, b))
	case "*":
		fmt.Println(new(big.Int).Mul(a, b))
	case "/", "%":
		if b.Sign() == 0 {
			fmt.Println("Error: Division by zero")
			return 0
		}
		q, r := new(big.Int).QuoRem(a, b, new(big.Int))
		if lines[2] == "/" {
			fmt.Println(q)
		} else {
			fmt.Println(r)
		}
	default:
		return 2
	}
	return 0
}

func buildBinary(t *testing.T) string {
	t.Helper()
	binName := "bigcheck"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	// go test runs in the package directory; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/bigcheck")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build bigcheck: %v", err)
	}
	return binPath
}

// TestCLI_E2E verifies the built binary against in-process and external subjects.
func TestCLI_E2E(t *testing.T) {
	binPath := buildBinary(t)
	self, err := os.Executable()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		env      []string
		wantOut  string
		wantCode int
	}{
		{
			name:     "Builtin reference subject",
			args:     []string{"--subject", "builtin:reference", "-n", "200", "--seed", "1"},
			wantOut:  "ALL 200 CASES PASSED",
			wantCode: 0,
		},
		{
			name:     "Builtin floor subject",
			args:     []string{"--subject", "builtin:floor", "-n", "200", "--ops", "/,%", "--seed", "1"},
			wantOut:  "EXPECTED_MISMATCH",
			wantCode: 3,
		},
		{
			name:     "External truncating subject",
			args:     []string{"--subject", self, "-n", "25", "--max-digits", "30", "-q"},
			env:      []string{subjectModeEnv + "=truncating"},
			wantOut:  "PASS 25/25",
			wantCode: 0,
		},
		{
			name:     "External crashing subject",
			args:     []string{"--subject", self, "-n", "3", "--fail-fast"},
			env:      []string{subjectModeEnv + "=crash"},
			wantOut:  "Runtime Error or Crash",
			wantCode: 3,
		},
		{
			name:     "Missing subject",
			args:     []string{"--subject", "./definitely-not-here", "-n", "5"},
			wantOut:  "not found",
			wantCode: 5,
		},
		{
			name:     "Invalid configuration",
			args:     []string{"--max-digits", "0"},
			wantOut:  "max-digits",
			wantCode: 4,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "bigcheck",
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(append(os.Environ(), "NO_COLOR=1"), tt.env...)
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput:\n%s", code, tt.wantCode, outStr)
			}
			if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}
