package trail

import "context"

// Options configure one run of the folder queue.
type Options struct {
	Params  Params
	Workers int
	Limit   int
}

// ProcessFolders drives the folder queue: for each folder in order it
// loads the frame cache, runs the scheduler, and records the outcome
// on the FolderInfo. Folder-level failures never stop the queue; only
// cancellation does. The final event is exactly one of AllComplete or
// Cancelled, and the events channel is closed afterwards.
//
// FolderInfo entries are mutated in place, and only from here.
func ProcessFolders(ctx context.Context, folders []FolderInfo, opts Options, events chan<- ProgressUpdate) {
	defer close(events)

	scheduler := NewScheduler(opts.Workers, events)

	for i := range folders {
		if ctx.Err() != nil {
			events <- Cancelled{}
			return
		}

		folder := &folders[i]
		folder.Status = StatusProcessing
		events <- FolderStarted{FolderIndex: i, FolderName: folder.Name}

		cache, err := LoadFrameCache(folder.Path, opts.Limit)
		if err != nil {
			folder.Status = StatusError
			folder.ErrMessage = err.Error()
			events <- FolderError{FolderIndex: i, Message: err.Error()}
			continue
		}

		if err := scheduler.Run(ctx, i, folder.Path, cache, opts.Params); err != nil {
			folder.Status = StatusError
			folder.ErrMessage = err.Error()
			continue
		}

		folder.Status = StatusComplete
		folder.Progress = 1
	}

	events <- AllComplete{}
}
