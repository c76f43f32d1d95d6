package lanes

import "github.com/matzehuels/signupboard/pkg/board"

// RenderJSON serializes the board. The output is stable: rendering the same
// board twice yields identical bytes.
func RenderJSON(b board.Board) ([]byte, error) {
	data, err := board.Marshal(b)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
