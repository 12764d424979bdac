package game

// Command is a discrete player action, delivered by the input layer at
// most once per frame each. Commands apply atomically; an invalid one is
// rejected by simply not mutating anything.
type Command int

const (
	MoveLeft Command = iota
	MoveRight
	SoftDrop
	HardDrop
	RotateCW
	RotateCCW
	Hold
	TogglePause
	Restart
	Quit
)
