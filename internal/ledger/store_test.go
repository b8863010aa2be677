package ledger

import (
	"testing"

	"github.com/soundcheckk/studio_bot/internal/model"
)

func TestSetMarkIdempotent(t *testing.T) {
	s := NewStore()

	if !s.SetMark(1, "2026-08-03", model.MarkNoShow) {
		t.Fatal("первая установка отметки должна менять состояние")
	}
	if s.SetMark(1, "2026-08-03", model.MarkNoShow) {
		t.Error("повторная установка той же отметки должна быть no-op")
	}
	if got := s.NoShowCount(1); got != 1 {
		t.Errorf("NoShowCount = %d, ожидали 1", got)
	}
	if got := s.Len(); got != 1 {
		t.Errorf("Len = %d, ожидали 1", got)
	}
}

func TestSetMarkCategoryChange(t *testing.T) {
	s := NewStore()

	s.SetMark(1, "2026-08-03", model.MarkNoShow)
	if !s.SetMark(1, "2026-08-03", model.MarkMakeup) {
		t.Fatal("смена категории должна менять состояние")
	}

	// счётчик прежней категории откатился, новой — вырос
	if got := s.NoShowCount(1); got != 0 {
		t.Errorf("NoShowCount = %d, ожидали 0", got)
	}
	if got := s.MakeupOwedCount(1); got != 1 {
		t.Errorf("MakeupOwedCount = %d, ожидали 1", got)
	}
	if got := s.Mark(1, "2026-08-03"); got != model.MarkMakeup {
		t.Errorf("Mark = %q, ожидали makeup", got)
	}
}

func TestClearMark(t *testing.T) {
	s := NewStore()

	if s.ClearMark(1, "2026-08-03") {
		t.Error("снятие несуществующей отметки должно быть no-op")
	}

	s.SetMark(1, "2026-08-03", model.MarkMakeup)
	if !s.ClearMark(1, "2026-08-03") {
		t.Fatal("снятие отметки должно менять состояние")
	}
	if got := s.MakeupOwedCount(1); got != 0 {
		t.Errorf("MakeupOwedCount = %d, ожидали 0", got)
	}
	if got := s.Mark(1, "2026-08-03"); got != model.MarkNone {
		t.Errorf("Mark = %q, ожидали пустую", got)
	}
	if got := s.Len(); got != 0 {
		t.Errorf("Len = %d, ожидали 0", got)
	}
}

func TestSetMarkNoneRoutesToClear(t *testing.T) {
	s := NewStore()
	s.SetMark(1, "2026-08-03", model.MarkNoShow)

	if !s.SetMark(1, "2026-08-03", model.MarkNone) {
		t.Fatal("SetMark(MarkNone) по занятому уроку должен снять отметку")
	}
	if got := s.Len(); got != 0 {
		t.Errorf("Len = %d, ожидали 0", got)
	}
	if s.SetMark(1, "2026-08-03", model.MarkNone) {
		t.Error("SetMark(MarkNone) по пустому уроку должен быть no-op")
	}
}

// Счётчики всегда равны числу отметок соответствующей категории —
// любая последовательность мутаций сохраняет инвариант.
func TestCountersMatchMarks(t *testing.T) {
	s := NewStore()

	ops := []struct {
		student int64
		dateKey string
		mark    model.Mark
	}{
		{1, "2026-08-03", model.MarkNoShow},
		{1, "2026-08-10", model.MarkMakeup},
		{2, "2026-08-03", model.MarkNoShow},
		{1, "2026-08-03", model.MarkMakeup}, // смена категории
		{2, "2026-08-03", model.MarkNone},   // снятие
		{1, "2026-08-17", model.MarkNoShow},
	}
	for _, op := range ops {
		s.SetMark(op.student, op.dateKey, op.mark)
	}

	noShow := make(map[int64]int)
	owed := make(map[int64]int)
	for key, mark := range s.Marks() {
		id, _, ok := SplitKey(key)
		if !ok {
			t.Fatalf("непарсящийся ключ %q", key)
		}
		switch mark {
		case model.MarkNoShow:
			noShow[id]++
		case model.MarkMakeup:
			owed[id]++
		}
	}

	for _, id := range []int64{1, 2} {
		if got := s.NoShowCount(id); got != noShow[id] {
			t.Errorf("ученик %d: NoShowCount = %d, по отметкам %d", id, got, noShow[id])
		}
		if got := s.MakeupOwedCount(id); got != owed[id] {
			t.Errorf("ученик %d: MakeupOwedCount = %d, по отметкам %d", id, got, owed[id])
		}
	}
}

// Restore пересчитывает счётчики из карты отметок, игнорируя значения
// счётчиков снимка.
func TestRestoreRederivesCounters(t *testing.T) {
	snap := model.LedgerSnapshot{
		// снимок врёт: счётчики завышены
		OwedByStudent:   map[int64]int{1: 99},
		NoShowByStudent: map[int64]int{1: 99, 2: 5},
		MarksByLesson: map[string]model.Mark{
			"1|2026-08-03": model.MarkNoShow,
			"1|2026-08-10": model.MarkMakeup,
			"2|2026-08-03": model.MarkMakeup,
			"мусорный ключ": model.MarkNoShow,
			"3|2026-08-03":  "неизвестная отметка",
		},
	}

	s := Restore(snap)

	if got := s.NoShowCount(1); got != 1 {
		t.Errorf("NoShowCount(1) = %d, ожидали 1", got)
	}
	if got := s.MakeupOwedCount(1); got != 1 {
		t.Errorf("MakeupOwedCount(1) = %d, ожидали 1", got)
	}
	if got := s.NoShowCount(2); got != 0 {
		t.Errorf("NoShowCount(2) = %d, ожидали 0", got)
	}
	if got := s.Len(); got != 3 {
		t.Errorf("Len = %d, ожидали 3 валидных отметки", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewStore()
	s.SetMark(1, "2026-08-03", model.MarkNoShow)
	s.SetMark(2, "2026-08-10", model.MarkMakeup)

	restored := Restore(s.Snapshot())

	if got := restored.Mark(1, "2026-08-03"); got != model.MarkNoShow {
		t.Errorf("после restore Mark(1) = %q, ожидали noShow", got)
	}
	if got := restored.Mark(2, "2026-08-10"); got != model.MarkMakeup {
		t.Errorf("после restore Mark(2) = %q, ожидали makeup", got)
	}
	if got := restored.NoShowCount(1); got != 1 {
		t.Errorf("после restore NoShowCount(1) = %d, ожидали 1", got)
	}
}

func TestSnapshotOmitsZeroCounters(t *testing.T) {
	s := NewStore()
	s.SetMark(1, "2026-08-03", model.MarkNoShow)
	s.ClearMark(1, "2026-08-03")

	snap := s.Snapshot()
	if len(snap.NoShowByStudent) != 0 {
		t.Errorf("нулевые счётчики должны выпадать из снимка, получили %v", snap.NoShowByStudent)
	}
	if len(snap.MarksByLesson) != 0 {
		t.Errorf("снятые отметки должны выпадать из снимка, получили %v", snap.MarksByLesson)
	}
}

func TestSplitKey(t *testing.T) {
	cases := []struct {
		key     string
		id      int64
		dateKey string
		ok      bool
	}{
		{"1|2026-08-03", 1, "2026-08-03", true},
		{"42|2026-12-31", 42, "2026-12-31", true},
		{"|2026-08-03", 0, "", false},
		{"1|", 0, "", false},
		{"abc|2026-08-03", 0, "", false},
		{"12026-08-03", 0, "", false},
	}
	for _, tc := range cases {
		id, dateKey, ok := SplitKey(tc.key)
		if ok != tc.ok || id != tc.id || dateKey != tc.dateKey {
			t.Errorf("SplitKey(%q) = (%d, %q, %v), ожидали (%d, %q, %v)",
				tc.key, id, dateKey, ok, tc.id, tc.dateKey, tc.ok)
		}
	}
}
