// Package journeys composes page objects into named user journeys that
// can be run outside of `go test`, once from the CLI or on a schedule.
package journeys

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/skillbox-qa/intershop/internal/config"
	"github.com/skillbox-qa/intershop/internal/pages"
)

// Session is what a journey gets to work with: a fresh browser session
// bound to the shop and the suite data
type Session struct {
	*pages.BasePage
	Data *config.SuiteData
}

// Journey is a named scenario against the shop
type Journey struct {
	Name        string
	Description string
	Run         func(ctx context.Context, s *Session) error
}

var registry = map[string]Journey{}

// Register adds j to the set returned by All. Registering a name twice panics.
func Register(j Journey) {
	if _, dup := registry[j.Name]; dup {
		panic(fmt.Sprintf("journey %q registered twice", j.Name))
	}
	registry[j.Name] = j
}

// All returns the registered journeys ordered by name
func All() []Journey {
	out := make([]Journey, 0, len(registry))
	for _, j := range registry {
		out = append(out, j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

// Select returns the journeys named in names, in that order. No names
// selects everything.
func Select(names []string) ([]Journey, error) {
	if len(names) == 0 {
		return All(), nil
	}

	out := make([]Journey, 0, len(names))
	var unknown []string
	for _, name := range names {
		j, ok := registry[strings.TrimSpace(name)]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		out = append(out, j)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown journeys: %s", strings.Join(unknown, ", "))
	}
	return out, nil
}
