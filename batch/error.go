package batch

import "github.com/ardnew/advparse/script"

// Predefined errors (sentinel values).
var (
	ErrNoFiles     = script.NewError("no input files")
	ErrTaskPanic   = script.NewError("parser panicked")
	ErrNotStarted  = script.NewError("file not processed")
	ErrWriteReport = script.NewError("failed to write report")
	ErrDiscover    = script.NewError("failed to discover input files")
)
