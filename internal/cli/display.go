package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	moveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

var stickerColors = map[cube.Color]lipgloss.Color{
	cube.White:  lipgloss.Color("255"),
	cube.Yellow: lipgloss.Color("226"),
	cube.Green:  lipgloss.Color("34"),
	cube.Blue:   lipgloss.Color("27"),
	cube.Red:    lipgloss.Color("160"),
	cube.Orange: lipgloss.Color("208"),
}

func sticker(c cube.Color) string {
	return lipgloss.NewStyle().
		Background(stickerColors[c]).
		Foreground(lipgloss.Color("0")).
		Render(" " + c.String() + " ")
}

// faceRows renders one face as three lines of stickers.
func faceRows(f cube.Facelets, face cube.Face) [3]string {
	stickers := f.Face(face)
	var rows [3]string
	for r := 0; r < 3; r++ {
		var sb strings.Builder
		for c := 0; c < 3; c++ {
			sb.WriteString(sticker(stickers[r*3+c]))
		}
		rows[r] = sb.String()
	}
	return rows
}

// renderNet draws the cube unfolded with U above and D below the
// L F R B strip.
func renderNet(f cube.Facelets) string {
	pad := strings.Repeat(" ", 9)
	var lines []string
	for _, row := range faceRows(f, cube.U) {
		lines = append(lines, pad+row)
	}
	strip := [4][3]string{
		faceRows(f, cube.L), faceRows(f, cube.F), faceRows(f, cube.R), faceRows(f, cube.B),
	}
	for r := 0; r < 3; r++ {
		lines = append(lines, strip[0][r]+strip[1][r]+strip[2][r]+strip[3][r])
	}
	for _, row := range faceRows(f, cube.D) {
		lines = append(lines, pad+row)
	}
	return strings.Join(lines, "\n")
}

// renderMoves highlights a move sequence.
func renderMoves(moves []cube.Move) string {
	if len(moves) == 0 {
		return labelStyle.Render("(none)")
	}
	return moveStyle.Render(cube.FormatMoves(moves))
}

// field renders a "label: value" line.
func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}
