package netinfo

import (
	"context"
	"errors"
	"strings"

	"github.com/henri123lemoine/geokit/internal/debug"
)

// Fallback tries each source in order. A source that fails or finds no
// adapters hands over to the next one; the last error is returned when
// none succeeds.
type Fallback []Source

// Name implements Source.
func (f Fallback) Name() string {
	names := make([]string, len(f))
	for i, s := range f {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

// Adapters implements Source.
func (f Fallback) Adapters(ctx context.Context) ([]Adapter, error) {
	err := errors.New("no adapter source configured")
	for _, s := range f {
		var adapters []Adapter
		adapters, err = s.Adapters(ctx)
		if err == nil && len(adapters) > 0 {
			return adapters, nil
		}
		if err != nil {
			l := debug.Logger()
			l.Debug().Str("source", s.Name()).Err(err).Msg("adapter source failed")
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, err
}

// SourceFor returns the source selected by the network.source setting.
// "command" scrapes command output only; anything else reads the system
// first and scrapes as a fallback.
func SourceFor(name string) Source {
	if name == "command" {
		return CommandSource{}
	}
	return Fallback{SystemSource{}, CommandSource{}}
}
