package telemetry

// DayCounters holds the event counts of one simulated day.
type DayCounters struct {
	Food   int
	Births int
	Deaths int
}

// ColonyStats double-buffers per-colony daily counters: Current
// accumulates during the day, Previous holds the finished day for
// display. EndOfDay swaps atomically from the simulation's point of view
// (it runs between physics steps, never inside one). Lifetime sums every
// completed day since the last Reset.
type ColonyStats struct {
	Current  DayCounters
	Previous DayCounters
	Lifetime DayCounters
}

// RegisterFood records one food pickup.
func (s *ColonyStats) RegisterFood() {
	s.Current.Food++
}

// RegisterBirth records one new agent.
func (s *ColonyStats) RegisterBirth() {
	s.Current.Births++
}

// RegisterDeath records one agent removal.
func (s *ColonyStats) RegisterDeath() {
	s.Current.Deaths++
}

// EndOfDay snapshots the current counters into Previous and zeroes the
// accumulators for the new day.
func (s *ColonyStats) EndOfDay() {
	s.Lifetime.Food += s.Current.Food
	s.Lifetime.Births += s.Current.Births
	s.Lifetime.Deaths += s.Current.Deaths
	s.Previous = s.Current
	s.Current = DayCounters{}
}

// Reset zeroes both the accumulators and the snapshot. Used on
// simulation restart.
func (s *ColonyStats) Reset() {
	s.Current = DayCounters{}
	s.Previous = DayCounters{}
	s.Lifetime = DayCounters{}
}
