package formtemplater

import (
	"os/exec"
	"runtime"

	"github.com/pkg/browser"
)

// browserOpener launches the system browser, replaced in tests.
var browserOpener = openURL

func openURL(url string) error {
	if runtime.GOOS != "linux" {
		return browser.OpenURL(url)
	}

	// xdg-open writes noise to stderr, and routing the browser pkg output
	// elsewhere makes firefox block until the window is closed. A nil
	// Stdout and Stderr discards both.
	cmd := exec.Command("xdg-open", url)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
