package script

import (
	"context"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// queryEnv is the environment a query expression is evaluated against,
// once per command.
type queryEnv struct {
	Params  map[string]string `expr:"params"`
	Clip    *Clip             `expr:"clip"`
	Type    string            `expr:"type"`
	Raw     string            `expr:"raw"`
	Index   int               `expr:"index"`
	HasClip bool              `expr:"has_clip"`
}

func makeQueryEnv(i int, cmd *Command) queryEnv {
	return queryEnv{
		Params:  cmd.Params.Strings(),
		Clip:    cmd.Clip,
		Type:    cmd.Type,
		Raw:     cmd.Raw,
		Index:   i,
		HasClip: cmd.Clip != nil,
	}
}

// Query compiles a boolean filter expression and returns the commands it
// matches in source order.
//
// The expression is evaluated once per command with the variables type,
// params (a map of name to text), clip (nil without a clip), has_clip, raw
// and index. For example:
//
//	type == "message" && clip?.startTime > 10
//	"id" in params && params.id == "amao"
func (s *Stream) Query(ctx context.Context, query string) ([]*Command, error) {
	program, err := CompileQuery(query)
	if err != nil {
		return nil, err
	}

	return s.Filter(ctx, program)
}

// CompileQuery compiles a filter expression for [Stream.Filter].
func CompileQuery(query string) (*vm.Program, error) {
	program, err := expr.Compile(query, expr.Env(queryEnv{}), expr.AsBool())
	if err != nil {
		return nil, ErrQueryCompile.Wrap(err).With(slog.String("query", query))
	}

	return program, nil
}

// Filter returns the commands matched by a program from [CompileQuery].
func (s *Stream) Filter(ctx context.Context, program *vm.Program) ([]*Command, error) {
	var cmds []*Command

	for i, cmd := range s.commands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := vm.Run(program, makeQueryEnv(i, cmd))
		if err != nil {
			return nil, ErrQueryEvaluate.Wrap(err).With(
				slog.Int("index", i),
				slog.String("type", cmd.Type),
			)
		}

		if ok, _ := result.(bool); ok {
			cmds = append(cmds, cmd)
		}
	}

	s.logger.TraceContext(
		ctx,
		"query evaluated",
		slog.Int("matched", len(cmds)),
		slog.Int("commands", len(s.commands)),
	)

	return cmds, nil
}
