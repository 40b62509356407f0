package isa

import (
	"fmt"
)

// indicates that a document doesn't have the shape required of an ISA-JSON
// investigation
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("Invalid ISA-JSON document: %s", e.Message)
}
