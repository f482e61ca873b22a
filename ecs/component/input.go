package component

// Input is an actor's control state for one tick. MoveX runs from -1 (left)
// to 1 (right).
type Input struct {
	MoveX       float64
	Jump        bool
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()

// Next returns the input for the following tick. JumpPressed is set only on
// the tick the jump button goes down.
func (in Input) Next(moveX float64, jump bool) Input {
	return Input{MoveX: moveX, Jump: jump, JumpPressed: jump && !in.Jump}
}
