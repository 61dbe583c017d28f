package script

import (
	"encoding/json"
	"math"
)

// Clip is the timeline descriptor attached to a command by its clip
// parameter. Times are in seconds.
type Clip struct {
	StartTime        float64 `json:"startTime"        yaml:"startTime"        expr:"startTime"`
	Duration         float64 `json:"duration"         yaml:"duration"         expr:"duration"`
	ClipIn           float64 `json:"clipIn"           yaml:"clipIn"           expr:"clipIn"`
	EaseInDuration   float64 `json:"easeInDuration"   yaml:"easeInDuration"   expr:"easeInDuration"`
	EaseOutDuration  float64 `json:"easeOutDuration"  yaml:"easeOutDuration"  expr:"easeOutDuration"`
	BlendInDuration  float64 `json:"blendInDuration"  yaml:"blendInDuration"  expr:"blendInDuration"`
	BlendOutDuration float64 `json:"blendOutDuration" yaml:"blendOutDuration" expr:"blendOutDuration"`
	TimeScale        float64 `json:"timeScale"        yaml:"timeScale"        expr:"timeScale"`
	MixInEaseType    int     `json:"mixInEaseType"    yaml:"mixInEaseType"    expr:"mixInEaseType"`
}

// DefaultClip returns the descriptor used for every field that a clip
// parameter leaves out.
func DefaultClip() Clip {
	return Clip{
		BlendInDuration:  -1,
		BlendOutDuration: -1,
		MixInEaseType:    1,
		TimeScale:        1,
	}
}

// End returns the time at which the clip ends.
func (c Clip) End() float64 { return c.StartTime + c.Duration }

// DecodeClip decodes the JSON text of a clip parameter.
//
// DecodeClip never fails. Keys are matched exactly. Keys that are missing
// or null take their [DefaultClip] value, and text that is not a JSON
// object with numeric fields yields DefaultClip as a whole. An ease type
// outside the range of int keeps its default.
func DecodeClip(raw string) Clip {
	var fields map[string]json.RawMessage

	clip := DefaultClip()

	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return clip
	}

	decoded := clip
	ease := float64(clip.MixInEaseType)

	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"_startTime", &decoded.StartTime},
		{"_duration", &decoded.Duration},
		{"_clipIn", &decoded.ClipIn},
		{"_easeInDuration", &decoded.EaseInDuration},
		{"_easeOutDuration", &decoded.EaseOutDuration},
		{"_blendInDuration", &decoded.BlendInDuration},
		{"_blendOutDuration", &decoded.BlendOutDuration},
		{"_mixInEaseType", &ease},
		{"_timeScale", &decoded.TimeScale},
	} {
		data, ok := fields[f.key]
		if !ok {
			continue
		}

		var v *float64
		if err := json.Unmarshal(data, &v); err != nil {
			return clip
		}

		if v != nil {
			*f.dst = *v
		}
	}

	if t := math.Trunc(ease); t >= math.MinInt && t < math.MaxInt {
		decoded.MixInEaseType = int(t)
	}

	return decoded
}
