package cmd

import "fmt"

// ── Unified output helpers ────────────────────────────────────────────────────
// Human-facing commands (inspect, version) use these for consistent icons and
// indentation. The serve command never writes to stdout outside the protocol.
//
// Icon semantics:
//   ✓  success / healthy
//   ⚠  warning
//   ~  neutral info

// printSection prints a top-level section header, e.g. "=== Model ===".
func printSection(title string) {
	fmt.Printf("\n=== %s ===\n", title)
}

// printOK prints a success line.
func printOK(name, msg string) {
	if name == "" {
		fmt.Printf("  ✓  %s\n", msg)
	} else {
		fmt.Printf("  ✓  [%s] %s\n", name, msg)
	}
}

// printWarn prints a warning line.
func printWarn(name, msg string) {
	if name == "" {
		fmt.Printf("  ⚠  %s\n", msg)
	} else {
		fmt.Printf("  ⚠  [%s] %s\n", name, msg)
	}
}

// printInfo prints a neutral informational line.
func printInfo(name, msg string) {
	if name == "" {
		fmt.Printf("  ~  %s\n", msg)
	} else {
		fmt.Printf("  ~  [%s] %s\n", name, msg)
	}
}
