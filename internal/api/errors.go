package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData means the visa table payload was empty or had no countries array.
	ErrNoData = errors.New("nessun dato trovato")
	// ErrNoVisa means the visa table had no entry for the destination.
	ErrNoVisa = errors.New("nessun visto trovato")
)

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("get %s: unexpected status %d", e.URL, e.Status)
}
