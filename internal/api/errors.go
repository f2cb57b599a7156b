package api

import (
	"errors"
	"fmt"
)

var errRequired = errors.New("symbols is required")

func errMalformedSymbol(pair string) error {
	return fmt.Errorf("malformed symbol %q, expected Name:TICKER", pair)
}

func errDuplicateName(name string) error {
	return fmt.Errorf("duplicate instrument name %q", name)
}
