package components

// Hook identifiers attached to rendered regions. They are stable so that
// hosts and tests can locate controls without depending on layout.
const (
	HookInput        = "input-date"
	HookCalendarIcon = "calendar-icon"
	HookCalendar     = "calendar"
	HookMonthSelect  = "calendar__month"
	HookYearSelect   = "calendar__year"
	HookMonthOption  = "calendar-month-option"
	HookYearOption   = "calendar-year-option"
	HookDate         = "calendar-date"
	HookArrowLeft    = "arrow-left"
	HookHome         = "icon-home"
	HookArrowRight   = "arrow-right"
)

// Zone is the screen rectangle occupied by a hooked control. Value carries
// the option value or day number for hooks that repeat.
type Zone struct {
	Hook  string
	Value int
	X     int
	Y     int
	W     int
	H     int
}

// Contains reports whether the cell (x, y) lies inside the zone.
func (z Zone) Contains(x, y int) bool {
	return x >= z.X && x < z.X+z.W && y >= z.Y && y < z.Y+z.H
}

// Center returns a cell inside the zone.
func (z Zone) Center() (int, int) {
	return z.X + z.W/2, z.Y + z.H/2
}

// zoneMap is rebuilt on every render. Zones are appended outermost first,
// so the last zone containing a point is the innermost one.
type zoneMap []Zone

func (zm *zoneMap) add(z Zone) {
	*zm = append(*zm, z)
}

func (zm zoneMap) hit(x, y int) (Zone, bool) {
	for i := len(zm) - 1; i >= 0; i-- {
		if zm[i].Contains(x, y) {
			return zm[i], true
		}
	}
	return Zone{}, false
}

func (zm zoneMap) find(hook string, value int) (Zone, bool) {
	for _, z := range zm {
		if z.Hook == hook && z.Value == value {
			return z, true
		}
	}
	return Zone{}, false
}

// shifted returns a copy of the zones translated by (dx, dy).
func (zm zoneMap) shifted(dx, dy int) zoneMap {
	out := make(zoneMap, len(zm))
	for i, z := range zm {
		z.X += dx
		z.Y += dy
		out[i] = z
	}
	return out
}

func isCalendarHook(hook string) bool {
	switch hook {
	case HookCalendar, HookMonthSelect, HookYearSelect, HookMonthOption, HookYearOption,
		HookDate, HookArrowLeft, HookHome, HookArrowRight:
		return true
	}
	return false
}
