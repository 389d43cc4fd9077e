// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openCommand builds the platform command to open a URL in the default
// browser. Split out so tests can intercept it.
var openCommand = func(url string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

// OpenInBrowser opens the URL in the user's default browser after
// re-validating it. The URL is validated even when a caller already did,
// so no path to the browser skips the check.
func OpenInBrowser(url string) error {
	if err := ValidateURL(url); err != nil {
		return err
	}
	if err := openCommand(url).Start(); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}
