// Package render draws panel blocks in a terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"reloadtrigger/internal/panel"

	"github.com/fatih/color"
)

var levelTags = map[panel.Level]func(...interface{}) string{
	panel.LevelInfo:    color.New(color.FgCyan).SprintFunc(),
	panel.LevelSuccess: color.New(color.FgGreen).SprintFunc(),
	panel.LevelWarning: color.New(color.FgYellow).SprintFunc(),
	panel.LevelError:   color.New(color.FgRed).SprintFunc(),
}

var bold = color.New(color.Bold).SprintFunc()

// Terminal is a panel.View writing to out. Writes of overlapping flows are
// serialized but not ordered.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) ShowWarning(b panel.Block) {
	t.write("", []panel.Block{b})
}

func (t *Terminal) ShowLog(b panel.Block) {
	t.write("log", []panel.Block{b})
}

func (t *Terminal) ShowStatus(blocks []panel.Block) {
	t.write("status", blocks)
}

func (t *Terminal) write(region string, blocks []panel.Block) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var sb strings.Builder
	if region != "" {
		fmt.Fprintf(&sb, "== %s ==\n", region)
	}
	for _, b := range blocks {
		sb.WriteString(Block(b))
	}
	io.WriteString(t.out, sb.String())
}

// Block renders one block as a tagged headline, its fields and its text.
func Block(b panel.Block) string {
	var sb strings.Builder
	tag := levelTags[b.Level]
	fmt.Fprintf(&sb, "%s %s\n", tag("["+strings.ToUpper(b.Level.String())+"]"), bold(b.Title))

	width := 0
	for _, f := range b.Fields {
		if len(f.Label) > width {
			width = len(f.Label)
		}
	}
	for _, f := range b.Fields {
		fmt.Fprintf(&sb, "  %-*s  %s\n", width+1, f.Label+":", f.Value)
	}
	if text := strings.TrimSpace(b.Text); text != "" {
		for _, line := range strings.Split(text, "\n") {
			sb.WriteString("  " + line + "\n")
		}
	}
	return sb.String()
}
