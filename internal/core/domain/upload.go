package domain

// UploadState is the state of the upload/process state machine.
// A failed submit returns straight to UploadStaged so the same file can
// be resubmitted; failure is reported through a notification.
type UploadState string

// Upload states.
const (
	UploadIdle       UploadState = "idle"
	UploadStaged     UploadState = "staged"
	UploadSubmitting UploadState = "submitting"
	UploadSucceeded  UploadState = "succeeded"
)

// String returns the string representation.
func (s UploadState) String() string {
	return string(s)
}

// CanStage reports whether a new file may be staged in this state.
func (s UploadState) CanStage() bool {
	return s != UploadSubmitting
}
