//go:build !unix

package subject

import "os/exec"

// configureProcessGroup keeps exec's default cancellation (Process.Kill).
func configureProcessGroup(*exec.Cmd) {}
