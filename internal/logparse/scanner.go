package logparse

// Block sentinels found in column 0 of the log.
const (
	StartSentinel = "Started By"
	EndSentinel   = "Total"
)

// state is the position of the scanner relative to an entry block.
type state int

const (
	stateOutside state = iota
	stateInside
)

func (s state) String() string {
	if s == stateInside {
		return "inside"
	}
	return "outside"
}

// action tells the parser what to do with the current row.
type action int

const (
	actionSkip action = iota
	actionOpenBlock
	actionCloseBlock
	actionEmit
)

// next is the transition function of the block scanner. first is the
// trimmed value of the row's first cell. A start sentinel always opens a
// new block, even inside one; an end sentinel always lands outside.
func next(s state, first string) (state, action) {
	switch {
	case first == StartSentinel:
		return stateInside, actionOpenBlock
	case first == EndSentinel:
		return stateOutside, actionCloseBlock
	case s == stateInside:
		return stateInside, actionEmit
	default:
		return stateOutside, actionSkip
	}
}
