package script

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
	"golang.org/x/text/encoding/unicode"

	"github.com/ardnew/advparse/log"
)

// Stream is the ordered sequence of commands parsed from one source.
//
// A Stream is immutable once parsed and safe for concurrent readers.
// It holds no reference to the source it was read from.
type Stream struct {
	logger   log.Logger
	name     string
	commands []*Command
	key      uint64
}

// Option configures how a [Stream] is parsed.
type Option func(*Stream)

// WithName sets the source identifier reported by [Stream.Name].
func WithName(name string) Option {
	return func(s *Stream) {
		s.name = name
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(s *Stream) {
		s.logger = logger
	}
}

func newStream(content string, opts ...Option) *Stream {
	s := &Stream{key: xxh3.HashString(content)}

	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With(slog.String("source", s.name))

	return s
}

// ParseString parses content into a [Stream].
func ParseString(ctx context.Context, content string, opts ...Option) *Stream {
	s := newStream(content, opts...)
	s.commands = s.scan(ctx, content)

	return s
}

// ParseBytes parses UTF-8 encoded data into a [Stream].
// A leading byte order mark is ignored.
func ParseBytes(ctx context.Context, data []byte, opts ...Option) (*Stream, error) {
	content, err := decodeSource(data)
	if err != nil {
		return nil, err
	}

	return ParseString(ctx, content, opts...), nil
}

// ParseReader reads r to the end and parses its content into a [Stream].
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Stream, error) {
	content, err := ReadSource(r)
	if err != nil {
		return nil, err
	}

	return ParseString(ctx, content, opts...), nil
}

// ParseFile reads and parses the file at path. The stream is named after
// path unless [WithName] is given.
func ParseFile(ctx context.Context, path string, opts ...Option) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadSource.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	content, err := ReadSource(f)
	if err != nil {
		return nil, WrapError(err).With(slog.String("path", path))
	}

	return ParseString(ctx, content, append([]Option{WithName(path)}, opts...)...), nil
}

// ReadSource reads r to the end and returns its content as a string.
// A leading UTF-8 byte order mark is removed. Content that is not valid
// UTF-8 is rejected with [ErrDecodeSource].
func ReadSource(r io.Reader) (string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadSource.Wrap(err)
	}

	return decodeSource(data)
}

func decodeSource(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrDecodeSource.With(slog.Int("source_bytes", len(data)))
	}

	text, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", ErrDecodeSource.Wrap(err)
	}

	return string(text), nil
}

func (s *Stream) scan(ctx context.Context, content string) []*Command {
	var cmds []*Command

	dropped := func(offset int) {
		s.logger.TraceContext(ctx, "span dropped", slog.Int("offset", offset))
	}

	for cmd := range scanCommands(content, dropped) {
		cmds = append(cmds, cmd)
	}

	s.logger.TraceContext(
		ctx,
		"source parsed",
		slog.Int("source_bytes", len(content)),
		slog.Int("commands", len(cmds)),
	)

	return cmds
}

// Name returns the source identifier given by [WithName] or [ParseFile].
func (s *Stream) Name() string { return s.name }

// Key returns the xxh3 hash of the parsed content.
func (s *Stream) Key() uint64 { return s.key }

// Len returns the number of commands.
func (s *Stream) Len() int { return len(s.commands) }

// Command returns the i'th command.
func (s *Stream) Command(i int) *Command { return s.commands[i] }

// Commands returns the commands in source order.
func (s *Stream) Commands() []*Command { return slices.Clone(s.commands) }

// All returns an iterator over the index and command of every command.
func (s *Stream) All() iter.Seq2[int, *Command] { return slices.All(s.commands) }

var (
	// parsed stores a *state per distinct content, keyed by its xxh3 hash.
	parsed sync.Map
)

// state holds the commands parsed once from one content.
type state struct {
	once     sync.Once
	commands []*Command
}

// ParseCached parses content like [ParseString], reusing the commands of
// any earlier call with identical content. Streams that share content
// share their commands, so callers must not modify them.
func ParseCached(ctx context.Context, content string, opts ...Option) *Stream {
	s := newStream(content, opts...)

	value, hit := parsed.LoadOrStore(strconv.FormatUint(s.key, 36), new(state))
	entry := value.(*state)

	s.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(s.key, 16)),
		slog.Bool("cache_hit", hit),
	)

	entry.once.Do(func() {
		entry.commands = s.scan(ctx, content)
	})

	s.commands = entry.commands

	return s
}

// ClearCache removes every entry stored by [ParseCached].
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	parsed.Clear()
}
