package face

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock reading in 12-hour form.
type TimeOfDay struct {
	Hour   int // 0-11
	Minute int // 0-59
	Second int // 0-59
}

// TimeOfDayFrom samples t in its own location.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	hour, minute, second := t.Clock()
	return TimeOfDay{Hour: hour % 12, Minute: minute, Second: second}
}

// ParseTimeOfDay accepts "HH:MM:SS" or "HH:MM" with a 0-23 hour.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayFrom(t), nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q (want HH:MM:SS)", s)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// HourAngle is the hour hand angle in degrees clockwise from 12 o'clock,
// including the minute and second contributions.
func (t TimeOfDay) HourAngle() float64 {
	return (float64(t.Hour) + float64(t.Minute)/60 + float64(t.Second)/3600) * 30
}

// MinuteAngle includes the second contribution.
func (t TimeOfDay) MinuteAngle() float64 {
	return (float64(t.Minute) + float64(t.Second)/60) * 6
}

func (t TimeOfDay) SecondAngle() float64 {
	return float64(t.Second) * 6
}
