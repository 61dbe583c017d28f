// Package pkg holds the identity of the advparse module.
package pkg

import (
	_ "embed"
	"strings"
)

// version is the raw contents of the VERSION file.
//
//go:embed VERSION
var version string

// Version is the semantic version of advparse embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command name. It appears in help text, default
	// config paths, and environment variable names.
	Name = "advparse"
	// Description is a short summary of the project used in help output.
	Description = "Bracket-command script parser for visual novel engines"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
