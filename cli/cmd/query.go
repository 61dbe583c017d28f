package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the command types suggested for an unknown type.
const maxSuggestions = 3

// Query prints the commands of a script matching a filter expression.
type Query struct {
	Type  string `help:"Only match commands of this type." short:"t"`
	Count bool   `help:"Print only the number of matches." short:"c"`

	Source string `arg:""   help:"Script file or '-' for stdin." name:"source"`
	Expr   string `arg:""   help:"Boolean filter over type, params, clip, has_clip, raw, and index." name:"expr" optional:""`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := parseSource(ctx, q.Source, "query")
	if err != nil {
		return err
	}

	query, err := q.expression(s.Types())
	if err != nil {
		return err
	}

	matches, err := s.Query(ctx, query)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	if q.Count {
		_, err = fmt.Fprintln(w, len(matches))
	} else {
		var sb strings.Builder
		for _, c := range matches {
			fmt.Fprintf(&sb, "%d\t%s\t%s\n", c.Offset, c.Type, c.Raw)
		}

		_, err = fmt.Fprint(w, sb.String())
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// expression combines the --type shortcut with the filter expression.
func (q *Query) expression(types []string) (string, error) {
	switch {
	case q.Type == "" && strings.TrimSpace(q.Expr) == "":
		return "", ErrNoQuery

	case q.Type == "":
		return q.Expr, nil

	case !slices.Contains(types, q.Type):
		return "", unknownType(q.Type, types)
	}

	query := "type == " + strconv.Quote(q.Type)
	if strings.TrimSpace(q.Expr) != "" {
		query += " && (" + q.Expr + ")"
	}

	return query, nil
}

// unknownType reports typ with the closest known types as suggestions.
func unknownType(typ string, types []string) error {
	err := ErrUnknownType.With(slog.String("type", typ))

	suggest := suggestTypes(typ, types)
	if len(suggest) == 0 {
		return err
	}

	return err.Wrap(fmt.Errorf("did you mean %s?", strings.Join(suggest, ", ")))
}

// suggestTypes returns up to [maxSuggestions] of types that fuzzily match
// typ, best first.
func suggestTypes(typ string, types []string) []string {
	matches := fuzzy.Find(typ, types)

	suggest := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches[:min(len(matches), maxSuggestions)] {
		suggest = append(suggest, m.Str)
	}

	return suggest
}
