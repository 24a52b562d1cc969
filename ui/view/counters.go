package view

import (
	"fmt"

	"github.com/soocke/gesture-scroll/ui/presenter"
)

func formatCounters(c presenter.Counters) string {
	return fmt.Sprintf("Frames %d (dropped %d)  Events %d  Commands %d  Suppressed %d  Failed %d",
		c.Processed, c.Dropped, c.Events, c.Commands, c.Suppressed, c.Failed)
}
