package calendar

import (
	"testing"

	"github.com/soundcheckk/studio_bot/internal/model"
)

func TestLessonUnits(t *testing.T) {
	cases := []struct {
		class string
		want  float64
	}{
		{model.Duration30M, 1},
		{model.Duration45M, 1.5},
		{model.Duration1HR, 2},
		{"", 1},
		{"90M", 1},
	}
	for _, tc := range cases {
		if got := LessonUnits(tc.class); got != tc.want {
			t.Errorf("LessonUnits(%q) = %v, ожидали %v", tc.class, got, tc.want)
		}
	}
}

func TestDurationMinutes(t *testing.T) {
	if got := DurationMinutes(model.Duration45M); got != 45 {
		t.Errorf("DurationMinutes(45M) = %d, ожидали 45", got)
	}
	if got := DurationMinutes(model.Duration1HR); got != 60 {
		t.Errorf("DurationMinutes(1HR) = %d, ожидали 60", got)
	}
	if got := DurationMinutes("unknown"); got != 30 {
		t.Errorf("DurationMinutes(unknown) = %d, ожидали 30", got)
	}
}
