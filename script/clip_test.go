package script

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeClip(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Clip
	}{
		{
			name: "empty object",
			raw:  `{}`,
			want: Clip{
				StartTime:        0,
				Duration:         0,
				ClipIn:           0,
				EaseInDuration:   0,
				EaseOutDuration:  0,
				BlendInDuration:  -1,
				BlendOutDuration: -1,
				MixInEaseType:    1,
				TimeScale:        1,
			},
		},
		{
			name: "partial",
			raw:  `{"_startTime":1.5,"_duration":2.25}`,
			want: *clipWith(func(c *Clip) {
				c.StartTime = 1.5
				c.Duration = 2.25
			}),
		},
		{
			name: "all fields",
			raw: `{"_startTime":1,"_duration":2,"_clipIn":3,"_easeInDuration":4,` +
				`"_easeOutDuration":5,"_blendInDuration":6,"_blendOutDuration":7,` +
				`"_mixInEaseType":8,"_timeScale":9}`,
			want: Clip{
				StartTime:        1,
				Duration:         2,
				ClipIn:           3,
				EaseInDuration:   4,
				EaseOutDuration:  5,
				BlendInDuration:  6,
				BlendOutDuration: 7,
				MixInEaseType:    8,
				TimeScale:        9,
			},
		},
		{
			name: "ease type truncated",
			raw:  `{"_mixInEaseType":2.9}`,
			want: *clipWith(func(c *Clip) { c.MixInEaseType = 2 }),
		},
		{
			name: "null field takes default",
			raw:  `{"_timeScale":null,"_clipIn":0.5}`,
			want: *clipWith(func(c *Clip) { c.ClipIn = 0.5 }),
		},
		{
			name: "unknown keys ignored",
			raw:  `{"_startTime":3,"_other":"x"}`,
			want: *clipWith(func(c *Clip) { c.StartTime = 3 }),
		},
		{
			name: "keys match exactly",
			raw:  `{"_STARTTIME":3,"_Duration":4,"_duration":2}`,
			want: *clipWith(func(c *Clip) { c.Duration = 2 }),
		},
		{
			name: "ease type out of range keeps default",
			raw:  `{"_mixInEaseType":1e30,"_startTime":1}`,
			want: *clipWith(func(c *Clip) { c.StartTime = 1 }),
		},
		{
			name: "negative ease type out of range keeps default",
			raw:  `{"_mixInEaseType":-1e30}`,
			want: DefaultClip(),
		},
		{
			name: "negative ease type truncated",
			raw:  `{"_mixInEaseType":-2.5}`,
			want: *clipWith(func(c *Clip) { c.MixInEaseType = -2 }),
		},
		{name: "malformed", raw: `{"_startTime":`, want: DefaultClip()},
		{name: "array", raw: `[1,2]`, want: DefaultClip()},
		{name: "null", raw: `null`, want: DefaultClip()},
		{name: "empty", raw: ``, want: DefaultClip()},
		{name: "wrong field type", raw: `{"_startTime":"x","_duration":4}`, want: DefaultClip()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, DecodeClip(tt.raw)); diff != "" {
				t.Errorf("DecodeClip(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestClipEnd(t *testing.T) {
	c := Clip{StartTime: 1.5, Duration: 4}
	if got := c.End(); got != 5.5 {
		t.Errorf("End() = %v, want 5.5", got)
	}
}
