package timer

import (
	"testing"

	"go.uber.org/goleak"
)

// Every manager created by a test must have stopped its tickers
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
