package commands

import (
	"fmt"
)

// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일

// PrintHeader prints a formatted section header
func PrintHeader(title string) {
	fmt.Println()
	PrintDoubleSeparator()
	fmt.Printf("  %s\n", title)
	PrintSeparator()
}

// PrintKV prints one aligned key/value line
func PrintKV(key string, value interface{}) {
	fmt.Printf("  %-14s: %v\n", key, value)
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Printf("⚠️  %s\n", message)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println()
	fmt.Printf("✅ %s\n", message)
}
