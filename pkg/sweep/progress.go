package sweep

import (
	"fmt"
	"io"
	"os"
)

// ProgressHandler observes sweep progress. It is invoked after every
// attempted case, successful or not. Console formatting is a concern of the
// handler, not of the sweep itself.
type ProgressHandler interface {
	OnProgress(done int, total int)
}

// ConsoleProgress renders progress as a single line overwritten in place,
// e.g. `Progress: 4/4 (100.00%)`.
type ConsoleProgress struct {
	Out io.Writer
}

// OnProgress implements ProgressHandler interface.
func (p ConsoleProgress) OnProgress(done int, total int) {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintf(out, "Progress: %d/%d (%.2f%%)\r", done, total, float64(done)/float64(total)*100)
}
