package chromebrowser

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/playwright-community/playwright-go"
)

// Environment variables consulted by ResolveChromePath, in priority order.
var chromePathEnv = []string{"LCPWEIGHT_CHROME_PATH", "CHROME_PATH"}

// ResolveChromePath returns explicitPath when set, then the first non-empty
// path environment variable, then the first browser found in the platform's
// usual locations. An empty result means no browser was found; callers may
// InstallChromium.
func ResolveChromePath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}
	for _, name := range chromePathEnv {
		if p := os.Getenv(name); p != "" {
			return p
		}
	}
	for _, candidate := range systemCandidates(runtime.GOOS) {
		if p := resolveExecutable(candidate); p != "" {
			return p
		}
	}
	return ""
}

// systemCandidates lists Chromium builds before Chrome for goos.
func systemCandidates(goos string) []string {
	switch goos {
	case "darwin":
		return []string{
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Google Chrome Canary.app/Contents/MacOS/Google Chrome Canary",
		}
	case "linux":
		return []string{"chromium", "chromium-browser", "google-chrome-stable", "google-chrome"}
	case "windows":
		var out []string
		for _, env := range []string{"PROGRAMFILES", "PROGRAMFILES(X86)", "LOCALAPPDATA"} {
			root := os.Getenv(env)
			if root == "" {
				continue
			}
			out = append(out,
				root+`\Chromium\Application\chrome.exe`,
				root+`\Google\Chrome\Application\chrome.exe`,
			)
		}
		return out
	default:
		return nil
	}
}

// InstallChromium downloads Playwright's Chromium build and returns its
// executable path.
func InstallChromium() (string, error) {
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
		return "", fmt.Errorf("install chromium: %w", err)
	}

	pw, err := playwright.Run(&playwright.RunOptions{SkipInstallBrowsers: true})
	if err != nil {
		return "", fmt.Errorf("start playwright: %w", err)
	}
	defer pw.Stop()

	path := pw.Chromium.ExecutablePath()
	if resolveExecutable(path) == "" {
		return "", fmt.Errorf("chromium not found at %s", path)
	}
	return path, nil
}

// resolveExecutable returns nameOrPath if it is an existing absolute path,
// or its PATH lookup result for a bare command name.
func resolveExecutable(nameOrPath string) string {
	if nameOrPath == "" {
		return ""
	}
	if filepath.IsAbs(nameOrPath) || (len(nameOrPath) > 1 && nameOrPath[1] == ':') {
		if _, err := os.Stat(nameOrPath); err != nil {
			return ""
		}
		return nameOrPath
	}
	p, err := exec.LookPath(nameOrPath)
	if err != nil {
		return ""
	}
	return p
}
