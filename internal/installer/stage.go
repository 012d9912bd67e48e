package installer

import "fmt"

// Stage names a phase of the install pipeline. Stages run strictly in
// the order listed; a failure stops the run at that stage.
type Stage string

const (
	StageResolvingVersion Stage = "resolving version"
	StageResolvingAsset   Stage = "resolving asset"
	StageFetchingChecksum Stage = "fetching checksum"
	StageDownloading      Stage = "downloading"
	StageVerifying        Stage = "verifying"
	StageExtracting       Stage = "extracting"
	StageInstalling       Stage = "installing"
	StageRegisteringPath  Stage = "registering path"
)

// StageError wraps a failure with the pipeline stage it occurred in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
