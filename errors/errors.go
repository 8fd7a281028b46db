package errors

import "fmt"

var (
	ErrRetriesExhausted   = fmt.Errorf("retries exhausted")
	ErrPairSpaceExhausted = fmt.Errorf("no unused user pair left to sample")
	ErrUnknownStrategy    = fmt.Errorf("unknown generation strategy")
	ErrEmptyCatalogue     = fmt.Errorf("benchmark catalogue is empty")
)
