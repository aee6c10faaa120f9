package errors

import "errors"

// Error messages.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrNoActiveFile        = errors.New("no active file")
	ErrToolMissing         = errors.New("tool executable not found")
	ErrLaunchFailure       = errors.New("failed to launch tool")
	ErrSubmissionCancelled = errors.New("submission cancelled")
	ErrUnknownCommand      = errors.New("unknown command")
	ErrUnknownMode         = errors.New("unknown classification mode")
	ErrEmptyToolCommand    = errors.New("tool command is empty")
)
