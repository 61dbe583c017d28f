package cmd

import "github.com/ardnew/advparse/script"

// Predefined errors (sentinel values).
var (
	ErrWriteOutput = script.NewError("failed to write output")
	ErrWriteConfig = script.NewError("failed to write configuration file")
	ErrFileExists  = script.NewError("file exists (use --force to overwrite)")
	ErrVerify      = script.NewError("document failed schema validation")
	ErrUnknownType = script.NewError("unknown command type")
	ErrNoQuery     = script.NewError("no query expression or --type given")
)
