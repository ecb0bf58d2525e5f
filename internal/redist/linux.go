package redist

import "context"

// linuxStrategy produces nothing. Linux packages are built elsewhere.
type linuxStrategy struct {
	deps
}

func (s *linuxStrategy) Tool() string { return "" }

func (s *linuxStrategy) Preflight(ctx context.Context, pc *Context) error {
	return nil
}

func (s *linuxStrategy) Package(ctx context.Context, pc *Context) (*Artifact, error) {
	s.printer.Warning("no redistributable package is produced on Linux")
	return nil, nil
}
