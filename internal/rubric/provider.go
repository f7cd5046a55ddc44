package rubric

import (
	"errors"
	"sync/atomic"
)

// Provider serves the active rubric and swaps it atomically on Reload.
type Provider struct {
	loader  *Loader
	current atomic.Pointer[Rubric]
}

func NewProvider(l *Loader) *Provider { return &Provider{loader: l} }

// Current returns the active rubric, or false when none is loaded.
func (p *Provider) Current() (*Rubric, bool) {
	r := p.current.Load()
	return r, r != nil
}

// Reload reads the rubric from the store. On failure the previous rubric
// stays active; a missing rubric clears it.
func (p *Provider) Reload() (*Rubric, error) {
	r, err := p.loader.Load()
	if errors.Is(err, ErrNoRubric) {
		p.current.Store(nil)
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	p.current.Store(r)
	return r, nil
}
