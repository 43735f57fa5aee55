package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// glyphs maps each clock character to a 5-line block representation.
// Digits are 5 cells wide, the colon is 2.
var glyphs = map[rune][5]string{
	'0': {
		"█████",
		"█   █",
		"█   █",
		"█   █",
		"█████",
	},
	'1': {
		"  █  ",
		" ██  ",
		"  █  ",
		"  █  ",
		" ███ ",
	},
	'2': {
		"█████",
		"    █",
		"█████",
		"█    ",
		"█████",
	},
	'3': {
		"█████",
		"    █",
		" ████",
		"    █",
		"█████",
	},
	'4': {
		"█   █",
		"█   █",
		"█████",
		"    █",
		"    █",
	},
	'5': {
		"█████",
		"█    ",
		"█████",
		"    █",
		"█████",
	},
	'6': {
		"█████",
		"█    ",
		"█████",
		"█   █",
		"█████",
	},
	'7': {
		"█████",
		"    █",
		"   █ ",
		"  █  ",
		"  █  ",
	},
	'8': {
		"█████",
		"█   █",
		"█████",
		"█   █",
		"█████",
	},
	'9': {
		"█████",
		"█   █",
		"█████",
		"    █",
		"█████",
	},
	':': {
		"  ",
		"█ ",
		"  ",
		"█ ",
		"  ",
	},
	'•': {
		"     ",
		"     ",
		" ███ ",
		"     ",
		"     ",
	},
}

// renderBigClock renders a clock string like "07:00" as multi-line
// block digits tinted with the given color. Narrow terminals fall back
// to a single bold line.
func renderBigClock(clock string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < 44 {
		return style.Render(clock)
	}

	var lines [5]string
	for _, ch := range clock {
		glyph, ok := glyphs[ch]
		if !ok {
			continue
		}
		for i := 0; i < 5; i++ {
			if lines[i] != "" {
				lines[i] += " "
			}
			lines[i] += glyph[i]
		}
	}

	styled := make([]string, 5)
	for i, line := range lines {
		styled[i] = style.Render(line)
	}
	return strings.Join(styled, "\n")
}
