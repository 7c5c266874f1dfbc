// Package platform resolves which modifier conventions the key command
// interpreter follows for undo, redo and the tab capture toggle.
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

type Platform int

const (
	Other Platform = iota
	Mac
	Windows
)

func (p Platform) String() string {
	switch p {
	case Mac:
		return "mac"
	case Windows:
		return "windows"
	default:
		return "other"
	}
}

var macHosts = []string{"mac", "iphone", "ipod", "ipad"}

// Detect classifies a host platform string such as "MacIntel" or "Win32".
// Matching ignores case.
func Detect(host string) Platform {
	host = strings.ToLower(host)
	for _, m := range macHosts {
		if strings.Contains(host, m) {
			return Mac
		}
	}
	if strings.Contains(host, "win") {
		return Windows
	}
	return Other
}

// Current resolves the platform of the running process.
func Current() Platform {
	switch runtime.GOOS {
	case "darwin", "ios":
		return Mac
	case "windows":
		return Windows
	default:
		return Other
	}
}

// Parse reads a configured platform name. An empty name means Current().
func Parse(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return Current(), nil
	case "mac", "macos", "darwin":
		return Mac, nil
	case "windows", "win":
		return Windows, nil
	case "other", "linux":
		return Other, nil
	}
	return Other, fmt.Errorf("unknown platform %q", name)
}
