package services

import "errors"

var (
	ErrParsingFailed    = errors.New("failed to parse corpus")
	ErrProcessingFailed = errors.New("failed to process corpus")
	// ErrInvalidInput covers every prediction failure caused by the request.
	ErrInvalidInput = errors.New("invalid prediction input")
	// ErrArtifactUnavailable wraps model.ErrArtifactNotFound and
	// model.ErrArtifactCorrupt from the prediction path.
	ErrArtifactUnavailable = errors.New("model artifact unavailable")
)
