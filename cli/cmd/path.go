package cmd

import (
	"os"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/advparse/pkg"
)

// PathEnv names the environment variable listing extra script directories,
// separated by [os.PathListSeparator].
var PathEnv = strings.ToUpper(pkg.Name) + "_PATH"

// searchPath returns dirs followed by the entries of list that are not
// already in dirs. Empty entries are dropped.
func searchPath(dirs []string, list string) []string {
	delim := string(os.PathListSeparator)

	merged := mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(delim),
		mung.WithPrefixItems(dirs...),
	).String()

	var (
		roots []string
		seen  = make(map[string]bool)
	)

	for _, dir := range strings.Split(merged, delim) {
		if dir == "" || seen[dir] {
			continue
		}

		seen[dir] = true
		roots = append(roots, dir)
	}

	return roots
}
