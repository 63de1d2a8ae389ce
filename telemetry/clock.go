// Package telemetry provides the simulated calendar, per-colony daily
// statistics, and structured experiment output.
package telemetry

// SeasonNames lists the four seasons in cycle order.
var SeasonNames = [4]string{"Spring", "Summer", "Autumn", "Winter"}

// Season indices as produced by Clock.SeasonIdx.
const (
	SeasonSpring = 0
	SeasonSummer = 1
	SeasonAutumn = 2
	SeasonWinter = 3
)

// Clock converts an accumulating tick counter into calendar units: day,
// hour, minute, season, and progress fractions. It fires the end-of-day
// rollover on the colony statistics it is recalculated with.
type Clock struct {
	// WorldTime is the raw accumulated tick counter.
	WorldTime float32

	DayLength        int // ticks per day
	SeasonLengthDays int

	// Derived calendar state, valid after Recalc.
	Day            int // 1-based, only ever increases
	Hour           int
	Minute         int
	SeasonIdx      int
	DayProgress    float32
	SeasonProgress float32

	lastDay int // last day Recalc saw; 0 means "never fired"
}

// NewClock creates a clock at day 1, 00:00.
func NewClock(dayLength, seasonLengthDays int) *Clock {
	c := &Clock{
		DayLength:        dayLength,
		SeasonLengthDays: seasonLengthDays,
	}
	c.Reset()
	return c
}

// Reset returns the clock to day 1, 00:00 without firing any rollover.
func (c *Clock) Reset() {
	c.WorldTime = 0
	c.Day = 1
	c.Hour = 0
	c.Minute = 0
	c.SeasonIdx = 0
	c.DayProgress = 0
	c.SeasonProgress = 0
	c.lastDay = 0
}

// Tick advances the raw counter. amount is typically 1 per physics step.
func (c *Clock) Tick(amount float32) {
	c.WorldTime += amount
}

// Recalc rederives the calendar from the accumulated time and, if the day
// index increased past a previously observed day, rolls over the given
// colony statistics. The very first recalculation (startup) never fires.
// Returns true when a rollover fired.
func (c *Clock) Recalc(colonies ...*ColonyStats) bool {
	c.Day = int(c.WorldTime/float32(c.DayLength)) + 1

	mins := int(c.WorldTime) % c.DayLength
	c.Hour = mins / 60
	c.Minute = mins % 60
	c.DayProgress = float32(mins) / float32(c.DayLength)

	daysPassed := c.Day - 1
	daysIntoSeason := daysPassed % c.SeasonLengthDays
	c.SeasonIdx = (daysPassed / c.SeasonLengthDays) % len(SeasonNames)
	c.SeasonProgress = (float32(daysIntoSeason) + c.DayProgress) / float32(c.SeasonLengthDays)

	rolled := false
	if c.Day > c.lastDay {
		if c.lastDay > 0 {
			for _, s := range colonies {
				s.EndOfDay()
			}
			rolled = true
		}
		c.lastDay = c.Day
	}
	return rolled
}

// SeasonName returns the display name of the current season.
func (c *Clock) SeasonName() string {
	return SeasonNames[c.SeasonIdx]
}
