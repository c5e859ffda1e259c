package cli

import (
	"io"
	"testing"

	"github.com/davidblanc347/parodesign/pkg/layout"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{
		"generate":   false,
		"layout":     false,
		"preview":    false,
		"chat":       false,
		"serve":      false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLayoutDirection(t *testing.T) {
	cases := map[string]layout.Direction{
		"tb":   layout.DirectionTopBottom,
		"TB":   layout.DirectionTopBottom,
		" lr ": layout.DirectionLeftRight,
		"rl":   layout.DirectionRightLeft,
		"bt":   layout.DirectionBottomTop,
	}
	for in, want := range cases {
		if got := layoutDirection(in); got != want {
			t.Errorf("layoutDirection(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPipelineOptionsDirectionOverride(t *testing.T) {
	c := New(io.Discard, LogInfo)

	opts := c.pipelineOptions("", false)
	if opts.Layout.Direction != layout.DirectionTopBottom {
		t.Errorf("default direction = %q", opts.Layout.Direction)
	}

	opts = c.pipelineOptions("lr", true)
	if opts.Layout.Direction != layout.DirectionLeftRight {
		t.Errorf("override direction = %q", opts.Layout.Direction)
	}
	if !opts.Refresh {
		t.Error("refresh flag not carried")
	}
}
