package entities

// UploadAction is what happened to a single file of a batch.
type UploadAction string

const (
	UploadCreated UploadAction = "created"
	UploadUpdated UploadAction = "updated"
	UploadFailed  UploadAction = "failed"
	UploadSkipped UploadAction = "skipped"
)

// FileOutcome is the per-file result of an upload.
type FileOutcome struct {
	Path   string       `json:"path"`
	Action UploadAction `json:"action"`
	SHA    string       `json:"sha,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// UploadReport lists the outcome of every file of a batch, so a caller can see
// which files already landed when the batch as a whole failed.
type UploadReport struct {
	Outcomes []FileOutcome `json:"outcomes"`
}

// Complete is true when every file was created or updated.
func (r UploadReport) Complete() bool {
	for _, o := range r.Outcomes {
		if o.Action != UploadCreated && o.Action != UploadUpdated {
			return false
		}
	}
	return len(r.Outcomes) > 0
}

// Landed returns the paths that reached the remote.
func (r UploadReport) Landed() []string {
	var paths []string
	for _, o := range r.Outcomes {
		if o.Action == UploadCreated || o.Action == UploadUpdated {
			paths = append(paths, o.Path)
		}
	}
	return paths
}

// Failed returns the outcomes that did not land.
func (r UploadReport) Failed() []FileOutcome {
	var failed []FileOutcome
	for _, o := range r.Outcomes {
		if o.Action == UploadFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// CommitMessage is the commit message used for a single file write.
func CommitMessage(path string, update bool) string {
	if update {
		return "Update " + path
	}
	return "Add " + path
}
