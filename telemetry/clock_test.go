package telemetry

import "testing"

func TestClockStartsAtDayOne(t *testing.T) {
	c := NewClock(1440, 3)

	if c.Day != 1 || c.Hour != 0 || c.Minute != 0 {
		t.Errorf("new clock = day %d %02d:%02d, want day 1 00:00", c.Day, c.Hour, c.Minute)
	}
	if c.SeasonName() != "Spring" {
		t.Errorf("season = %s, want Spring", c.SeasonName())
	}
}

func TestClockFirstRecalcNeverFires(t *testing.T) {
	c := NewClock(1440, 3)
	var s ColonyStats
	s.RegisterFood()

	if c.Recalc(&s) {
		t.Error("startup recalc must not fire a rollover")
	}
	if s.Current.Food != 1 || s.Previous.Food != 0 {
		t.Errorf("stats touched at startup: %+v", s)
	}
}

func TestClockRollsOverExactlyOnce(t *testing.T) {
	c := NewClock(1440, 3)
	var s ColonyStats
	c.Recalc(&s)

	// The whole first day passes without a rollover.
	for i := 0; i < 1439; i++ {
		c.Tick(1)
		if c.Recalc(&s) {
			t.Fatalf("rolled over at tick %d, before the day ended", i+1)
		}
	}
	if c.Day != 1 {
		t.Errorf("day = %d at tick 1439, want 1", c.Day)
	}

	s.RegisterFood()
	c.Tick(1)
	if !c.Recalc(&s) {
		t.Fatal("expected rollover at tick 1440")
	}
	if c.Day != 2 {
		t.Errorf("day = %d, want 2", c.Day)
	}
	if s.Previous.Food != 1 || s.Current.Food != 0 {
		t.Errorf("rollover did not snapshot stats: %+v", s)
	}

	// Same day, no second fire.
	if c.Recalc(&s) {
		t.Error("recalc fired twice for the same day")
	}
}

func TestClockHourMinute(t *testing.T) {
	c := NewClock(1440, 3)
	c.Tick(90)
	c.Recalc()

	if c.Hour != 1 || c.Minute != 30 {
		t.Errorf("time = %02d:%02d, want 01:30", c.Hour, c.Minute)
	}
	if c.DayProgress <= 0.06 || c.DayProgress >= 0.07 {
		t.Errorf("day progress = %v, want 90/1440", c.DayProgress)
	}
}

func TestClockSeasonCycle(t *testing.T) {
	c := NewClock(1440, 3)

	cases := []struct {
		day  int
		want string
	}{
		{1, "Spring"},
		{3, "Spring"},
		{4, "Summer"},
		{7, "Autumn"},
		{10, "Winter"},
		{12, "Winter"},
		{13, "Spring"}, // full cycle wraps
	}

	for _, tc := range cases {
		c.WorldTime = float32((tc.day - 1) * 1440)
		c.Recalc()
		if c.Day != tc.day {
			t.Errorf("day = %d, want %d", c.Day, tc.day)
		}
		if got := c.SeasonName(); got != tc.want {
			t.Errorf("day %d season = %s, want %s", tc.day, got, tc.want)
		}
	}
}

func TestClockRollsOverAllColonies(t *testing.T) {
	c := NewClock(1440, 3)
	var a, b ColonyStats
	c.Recalc(&a, &b)

	a.RegisterBirth()
	b.RegisterDeath()

	c.Tick(1440)
	if !c.Recalc(&a, &b) {
		t.Fatal("expected rollover")
	}
	if a.Previous.Births != 1 {
		t.Errorf("colony A births = %d, want 1", a.Previous.Births)
	}
	if b.Previous.Deaths != 1 {
		t.Errorf("colony B deaths = %d, want 1", b.Previous.Deaths)
	}
}

func TestClockReset(t *testing.T) {
	c := NewClock(1440, 3)
	c.Tick(5000)
	c.Recalc()

	c.Reset()
	if c.Day != 1 || c.WorldTime != 0 || c.SeasonIdx != 0 {
		t.Errorf("reset clock = %+v, want day 1 at time 0", c)
	}

	// A reset clock behaves like a fresh one: first recalc never fires.
	var s ColonyStats
	if c.Recalc(&s) {
		t.Error("recalc after reset fired a rollover")
	}
}
