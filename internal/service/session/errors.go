package session

import "fmt"

type panicError struct {
	value any
}

func (p *panicError) Error() string {
	return fmt.Sprintf("panic while composing reply: %v", p.value)
}
