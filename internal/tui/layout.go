package tui

// Layout holds where the picker goes for a terminal size. The footer is
// measured when the view is rendered, since the help grows when expanded.
type Layout struct {
	// Picker origin, used to translate mouse coordinates.
	PickerX int
	PickerY int

	// Width of the text field inside the input box.
	InputWidth int
}

const (
	marginLeft    = 2
	marginTop     = 1
	maxInputWidth = 30
	minInputWidth = 12

	// Input box border and padding, the gap and the icon box.
	inputChrome = 4 + 1 + 6
)

// CalculateLayout places the picker in the top-left corner with a small
// margin and sizes the text field to the terminal width.
func CalculateLayout(termWidth, termHeight int) Layout {
	l := Layout{PickerX: marginLeft, PickerY: marginTop}

	l.InputWidth = termWidth - 2*marginLeft - inputChrome
	if l.InputWidth > maxInputWidth {
		l.InputWidth = maxInputWidth
	}
	if l.InputWidth < minInputWidth {
		l.InputWidth = minInputWidth
	}
	return l
}
