package game

import "log/slog"

// maybeLogState emits a periodic world-state line when stats logging is
// enabled.
func (g *Game) maybeLogState() {
	if !g.logStats || g.tick%g.logInterval != 0 {
		return
	}

	var pops [2]int
	query := g.agentFilter.Query()
	for query.Next() {
		_, a := query.Get()
		pops[a.Colony]++
	}

	slog.Info("world",
		"tick", g.tick,
		"day", g.clock.Day,
		"season", g.clock.SeasonName(),
		"pop_a", pops[0],
		"pop_b", pops[1],
		"stock_a", g.foodStock[0],
		"stock_b", g.foodStock[1],
	)
}

func logWriteError(err error) {
	slog.Error("failed to write telemetry", "error", err)
}
