package script

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// scanned is the comparable form of a scanned command.
type scanned struct {
	Type   string
	Params []param
	Clip   *Clip
	Raw    string
	Offset int
}

func scanAll(content string) []scanned {
	var got []scanned

	for _, cmd := range Scan(content) {
		got = append(got, scanned{
			Type:   cmd.Type,
			Params: paramList(cmd.Params),
			Clip:   cmd.Clip,
			Raw:    cmd.Raw,
			Offset: cmd.Offset,
		})
	}

	return got
}

func clipWith(f func(*Clip)) *Clip {
	c := DefaultClip()
	f(&c)

	return &c
}

func TestScan(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []scanned
	}{
		{
			name:    "single command",
			content: `[message text=Hello name=amao]`,
			want: []scanned{{
				Type: "message",
				Params: []param{
					{Name: "text", Text: "Hello"},
					{Name: "name", Text: "amao"},
				},
				Raw: `[message text=Hello name=amao]`,
			}},
		},
		{
			name:    "surrounding text",
			content: "intro\n[a x=1]\nbetween [b]\n",
			want: []scanned{
				{
					Type:   "a",
					Params: []param{{Name: "x", Text: "1"}},
					Raw:    `[a x=1]`,
					Offset: 6,
				},
				{
					Type:   "b",
					Raw:    `[b]`,
					Offset: 22,
				},
			},
		},
		{
			name:    "nested brackets stay inside",
			content: `[outer a=\{nested=[x] \}]`,
			want: []scanned{{
				Type: "outer",
				Params: []param{
					{Name: "a", Kind: KindStructured, Text: `{nested=[x] }`},
				},
				Raw: `[outer a=\{nested=[x] \}]`,
			}},
		},
		{
			name:    "nested command as value",
			content: `[actorlayoutgroup layouts="[actorlayout id=amao]" id=amao]`,
			want: []scanned{{
				Type: "actorlayoutgroup",
				Params: []param{
					{Name: "layouts", Kind: KindStructured, Text: `[actorlayout id=amao]`},
					{Name: "id", Text: "amao"},
				},
				Raw: `[actorlayoutgroup layouts="[actorlayout id=amao]" id=amao]`,
			}},
		},
		{
			name:    "multiline command",
			content: "[message\n  text=Hello\n  name=amao\n]",
			want: []scanned{{
				Type: "message",
				Params: []param{
					{Name: "text", Text: "Hello"},
					{Name: "name", Text: "amao"},
				},
				Raw: "[message\n  text=Hello\n  name=amao\n]",
			}},
		},
		{
			name:    "clip decoded and removed",
			content: `[message text=hi clip=\{"_startTime":2,"_duration":3\}]`,
			want: []scanned{{
				Type:   "message",
				Params: []param{{Name: "text", Text: "hi"}},
				Clip: clipWith(func(c *Clip) {
					c.StartTime = 2
					c.Duration = 3
				}),
				Raw: `[message text=hi clip=\{"_startTime":2,"_duration":3\}]`,
			}},
		},
		{
			name:    "malformed clip uses defaults",
			content: `[bgm clip=oops]`,
			want: []scanned{{
				Type: "bgm",
				Clip: clipWith(func(*Clip) {}),
				Raw:  `[bgm clip=oops]`,
			}},
		},
		{
			name:    "escaped closer inside command",
			content: `[a x=\]] [b]`,
			want: []scanned{
				{
					Type:   "a",
					Params: []param{{Name: "x", Text: `\]`}},
					Raw:    `[a x=\]]`,
				},
				{
					Type:   "b",
					Raw:    `[b]`,
					Offset: 9,
				},
			},
		},
		{
			name:    "escaped opener outside commands",
			content: `\[not a command] [real]`,
			want: []scanned{{
				Type:   "real",
				Raw:    `[real]`,
				Offset: 17,
			}},
		},
		{
			name:    "unterminated command dropped",
			content: `[a x=1`,
		},
		{
			name:    "scanning resumes after unterminated opener",
			content: `[a x=1 [b y=2]`,
			want: []scanned{{
				Type:   "b",
				Params: []param{{Name: "y", Text: "2"}},
				Raw:    `[b y=2]`,
				Offset: 7,
			}},
		},
		{
			name:    "empty type dropped",
			content: `[] [ a=1]`,
		},
		{
			name: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, scanAll(tt.content)); diff != "" {
				t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanRawMatchesSource(t *testing.T) {
	content := "x [a b=1]\n\t[c d=\\{\"e\":[1]\\}] tail [f"

	for _, cmd := range Scan(content) {
		if got := content[cmd.Offset : cmd.Offset+len(cmd.Raw)]; got != cmd.Raw {
			t.Errorf("source at %d = %q, want %q", cmd.Offset, got, cmd.Raw)
		}
	}
}

func TestScanIdempotent(t *testing.T) {
	content := strings.Repeat(`[message text=hi clip=\{"_startTime":1\}] `, 3)

	first := scanAll(content)
	second := scanAll(content)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second Scan() differs (-first +second):\n%s", diff)
	}
}

func TestCommandsStopsEarly(t *testing.T) {
	n := 0

	for range Commands(`[a] [b] [c]`) {
		if n++; n == 2 {
			break
		}
	}

	if n != 2 {
		t.Errorf("iterated %d commands, want 2", n)
	}
}
