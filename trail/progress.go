package trail

// ProgressUpdate is a lifecycle event emitted while processing the
// folder queue. Producers are the Orchestrator and scheduler workers;
// there is exactly one consumer. FileProgress events within a folder
// may arrive out of frame-index order because tasks finish out of
// order; events for different folders never interleave.
type ProgressUpdate interface {
	progressUpdate()
}

// FolderStarted is emitted when a folder begins processing.
type FolderStarted struct {
	FolderIndex int
	FolderName  string
}

// FileProgress reports throttled per-folder completion counts.
type FileProgress struct {
	FolderIndex    int
	FilesDone      int
	FilesTotal     int
	CurrentFile    string
	FilesPerSecond float64
}

// FolderCompleted is emitted when every frame in a folder was written.
type FolderCompleted struct {
	FolderIndex int
}

// FolderError reports a folder-level failure or an aggregate of
// frame-level failures; the queue continues with the next folder.
type FolderError struct {
	FolderIndex int
	Message     string
}

// AllComplete is the terminal event of an uncancelled run.
type AllComplete struct{}

// Cancelled is the terminal event of a cancelled run.
type Cancelled struct{}

func (FolderStarted) progressUpdate()   {}
func (FileProgress) progressUpdate()    {}
func (FolderCompleted) progressUpdate() {}
func (FolderError) progressUpdate()     {}
func (AllComplete) progressUpdate()     {}
func (Cancelled) progressUpdate()       {}
