package script

import (
	"maps"
	"slices"
)

// DialogueType is the command type that carries a line of dialogue.
const DialogueType = "message"

// ByType returns the commands of type t in source order.
func (s *Stream) ByType(t string) []*Command {
	var cmds []*Command

	for _, cmd := range s.commands {
		if cmd.Type == t {
			cmds = append(cmds, cmd)
		}
	}

	return cmds
}

// Types returns the distinct command types in sorted order.
func (s *Stream) Types() []string {
	return slices.Sorted(maps.Keys(s.typeCounts()))
}

func (s *Stream) typeCounts() map[string]int {
	counts := make(map[string]int)

	for _, cmd := range s.commands {
		counts[cmd.Type]++
	}

	return counts
}

// Summary describes the timeline of a [Stream].
type Summary struct {
	// CommandTypes counts the commands of each type.
	CommandTypes map[string]int `json:"command_types" yaml:"command_types"`
	// TotalCommands is the number of commands.
	TotalCommands int `json:"total_commands" yaml:"total_commands"`
	// Duration is the latest [Clip.End] over all commands with a clip,
	// or 0 if none has one.
	Duration float64 `json:"duration" yaml:"duration"`
	// HasTimeline reports whether any command has a clip.
	HasTimeline bool `json:"has_timeline" yaml:"has_timeline"`
}

// Summary returns the timeline summary of the stream.
func (s *Stream) Summary() Summary {
	sum := Summary{
		TotalCommands: len(s.commands),
		CommandTypes:  s.typeCounts(),
	}

	for _, cmd := range s.commands {
		if cmd.Clip == nil {
			continue
		}

		if end := cmd.Clip.End(); !sum.HasTimeline || end > sum.Duration {
			sum.Duration = end
		}

		sum.HasTimeline = true
	}

	return sum
}

// DialogueLine is one line of dialogue.
type DialogueLine struct {
	// Time is the start time of the line, or nil if it has no clip.
	Time        *float64 `json:"time" yaml:"time"`
	Text        string   `json:"text" yaml:"text"`
	Name        string   `json:"name" yaml:"name"`
	SoundEffect string   `json:"se"   yaml:"se"`
}

// Dialogue returns a line for every [DialogueType] command in source
// order. Missing text, name or se parameters are empty.
func (s *Stream) Dialogue() []DialogueLine {
	var lines []DialogueLine

	for _, cmd := range s.ByType(DialogueType) {
		line := DialogueLine{
			Text:        cmd.Params.Text("text"),
			Name:        cmd.Params.Text("name"),
			SoundEffect: cmd.Params.Text("se"),
		}

		if cmd.Clip != nil {
			start := cmd.Clip.StartTime
			line.Time = &start
		}

		lines = append(lines, line)
	}

	return lines
}
