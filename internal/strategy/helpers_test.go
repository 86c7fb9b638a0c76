package strategy

import (
	"fmt"
	"time"

	"fjacquet/pdftext/internal/budget"
)

var testEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// testInput wraps data with a frozen one-minute budget.
func testInput(data string) Input {
	return Input{
		Data:   []byte(data),
		Budget: budget.New(budget.NewManualClock(testEpoch), time.Minute),
	}
}

// exhaustedInput wraps data with a budget that is already spent.
func exhaustedInput(data string) Input {
	return Input{
		Data:   []byte(data),
		Budget: budget.New(budget.NewManualClock(testEpoch), 0),
	}
}

// streamObject renders an indirect object holding a stream.
func streamObject(num int, dict, payload string) string {
	return fmt.Sprintf("%d 0 obj\n<< %s >>\nstream\n%s\nendstream\nendobj\n", num, dict, payload)
}
