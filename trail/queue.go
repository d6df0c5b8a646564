package trail

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FolderStatus tracks where a queued folder is in the pipeline.
type FolderStatus int

const (
	StatusPending FolderStatus = iota
	StatusProcessing
	StatusComplete
	StatusError
)

func (s FolderStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusProcessing:
		return "processing"
	case StatusComplete:
		return "complete"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// FolderInfo is one entry in the folder queue. Status, Progress and
// ErrMessage are mutated only by the Orchestrator; workers report
// through ProgressUpdate events instead.
type FolderInfo struct {
	Path       string
	Name       string
	FileCount  int
	Status     FolderStatus
	Progress   float64
	ErrMessage string
}

// imageExtensions are the accepted input extensions. Matching is on
// extension only; file content is not sniffed.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tga", ".gif"}

// IsImageFile checks if the given path has a known image extension
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, v := range imageExtensions {
		if v == ext {
			return true
		}
	}
	return false
}

// EnumerateFolders builds the queue for the given folder paths. Each
// folder gets a cached image-file count and status Pending; folders
// with zero matching files are still listed and fail later when
// processing is attempted.
func EnumerateFolders(roots []string) []FolderInfo {
	folders := make([]FolderInfo, 0, len(roots))
	for _, root := range roots {
		folders = append(folders, FolderInfo{
			Path:      root,
			Name:      filepath.Base(root),
			FileCount: CountImageFiles(root),
			Status:    StatusPending,
		})
	}
	return folders
}

// CountImageFiles counts matching image files in a directory without
// decoding them. Unreadable directories count as zero.
func CountImageFiles(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() && IsImageFile(e.Name()) {
			count++
		}
	}
	return count
}

// ListImageFiles returns the matching image files in a directory,
// sorted lexicographically by path. Sorted order defines the frame
// order of the sequence.
func ListImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && IsImageFile(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
