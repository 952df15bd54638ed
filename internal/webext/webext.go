// Package webext ships the browser-console helper script that reads preset
// states straight from the Filmlab web app.
package webext

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

//go:embed script.js
var script string

// FallbackFileName is where the script lands when no clipboard is available.
const FallbackFileName = "web-extension-script.txt"

// ScriptContent returns the helper script.
func ScriptContent() string {
	return strings.TrimSpace(script)
}

// CopyToClipboard places the script on the system clipboard. When no
// copy/paste mechanism is available it writes the script to
// FallbackFileName instead and reports the path used.
func CopyToClipboard() (string, error) {
	content := ScriptContent()
	if content == "" {
		return "", fmt.Errorf("web extension script is empty")
	}
	if !clipboard.Unsupported {
		if err := clipboard.WriteAll(content); err == nil {
			return "", nil
		}
	}
	if err := os.WriteFile(FallbackFileName, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write fallback script file: %w", err)
	}
	return FallbackFileName, nil
}
