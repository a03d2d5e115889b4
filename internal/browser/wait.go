package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// PollInterval is how often WaitFor re-evaluates its condition.
var PollInterval = 250 * time.Millisecond

// Condition decides whether the elements found for a locator satisfy a
// wait. It returns the elements handed back to the caller.
type Condition struct {
	name  string
	check func(ctx context.Context, found []Element) ([]Element, bool, error)
}

func (c Condition) String() string { return c.name }

// Present is satisfied once at least one element matches.
var Present = Condition{
	name: "presence",
	check: func(_ context.Context, found []Element) ([]Element, bool, error) {
		return found, len(found) > 0, nil
	},
}

// Visible is satisfied once the first match is displayed.
var Visible = Condition{
	name: "visibility",
	check: func(ctx context.Context, found []Element) ([]Element, bool, error) {
		if len(found) == 0 {
			return nil, false, nil
		}
		shown, err := found[0].IsDisplayed(ctx)
		if err != nil || !shown {
			return nil, false, nil
		}
		return found[:1], true, nil
	},
}

// AllVisible is satisfied once every match is displayed.
var AllVisible = Condition{
	name: "visibility of all",
	check: func(ctx context.Context, found []Element) ([]Element, bool, error) {
		if len(found) == 0 {
			return nil, false, nil
		}
		for _, el := range found {
			shown, err := el.IsDisplayed(ctx)
			if err != nil || !shown {
				return nil, false, nil
			}
		}
		return found, true, nil
	},
}

// Clickable is satisfied once the first match is displayed and enabled.
var Clickable = Condition{
	name: "clickability",
	check: func(ctx context.Context, found []Element) ([]Element, bool, error) {
		if len(found) == 0 {
			return nil, false, nil
		}
		shown, err := found[0].IsDisplayed(ctx)
		if err != nil || !shown {
			return nil, false, nil
		}
		enabled, err := found[0].IsEnabled(ctx)
		if err != nil || !enabled {
			return nil, false, nil
		}
		return found[:1], true, nil
	},
}

// Invisible is satisfied when no match is displayed, including when
// nothing matches at all.
var Invisible = Condition{
	name: "invisibility",
	check: func(ctx context.Context, found []Element) ([]Element, bool, error) {
		for _, el := range found {
			shown, err := el.IsDisplayed(ctx)
			if err == nil && shown {
				return nil, false, nil
			}
		}
		return nil, true, nil
	},
}

// WaitFor polls d until cond holds for loc or timeout elapses.
func WaitFor(ctx context.Context, d Driver, loc Locator, cond Condition, timeout time.Duration) ([]Element, error) {
	return poll(ctx, loc, cond, timeout, func(ctx context.Context) ([]Element, error) {
		return d.Find(ctx, loc)
	})
}

// WaitWithin is WaitFor scoped to the children of parent.
func WaitWithin(ctx context.Context, parent Element, loc Locator, cond Condition, timeout time.Duration) ([]Element, error) {
	rel := loc.Relative()
	return poll(ctx, loc, cond, timeout, func(ctx context.Context) ([]Element, error) {
		return parent.Find(ctx, rel)
	})
}

func poll(ctx context.Context, loc Locator, cond Condition, timeout time.Duration, find func(context.Context) ([]Element, error)) ([]Element, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		found, err := find(ctx)
		if err != nil && !errors.Is(err, ErrNoSuchElement) {
			return nil, err
		}
		if matched, ok, err := cond.check(ctx, found); err != nil {
			return nil, err
		} else if ok {
			return matched, nil
		}

		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("%w: %s of %s after %s", ErrTimeout, cond, loc, timeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
