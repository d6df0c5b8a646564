package utils

import (
	"path/filepath"
	"strings"
)

// IsNetworkDrive detects if a frame folder lives on a network-mounted
// drive. Parallel decoding of a network mount thrashes it, so callers
// drop to a single worker.
func IsNetworkDrive(dir string) bool {
	// Windows UNC paths, checked before resolving to absolute.
	if strings.HasPrefix(dir, "//") || strings.HasPrefix(dir, "\\\\") {
		return true
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return false
	}

	// Common network mount points per platform.
	for _, prefix := range []string{"/mnt/", "/media/", "/Volumes/"} {
		if strings.HasPrefix(absPath, prefix) {
			return true
		}
	}

	// Network filesystem names showing up in the mount path.
	lowerPath := strings.ToLower(absPath)
	for _, indicator := range []string{"nfs", "cifs", "smb", "webdav", "sshfs"} {
		if strings.Contains(lowerPath, indicator) {
			return true
		}
	}

	return false
}
