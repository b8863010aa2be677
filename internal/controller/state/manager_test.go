package state

import "testing"

func TestStateLifecycle(t *testing.T) {
	m := NewManager()

	if got := m.GetState(1); got != StateNone {
		t.Fatalf("начальное состояние %q, ожидали пустое", got)
	}

	m.SetState(1, StateEventAwaitTime)
	if got := m.GetState(1); got != StateEventAwaitTime {
		t.Errorf("GetState = %q", got)
	}

	m.SetData(1, "event_day", "Monday")
	if v, ok := m.GetData(1, "event_day"); !ok || v != "Monday" {
		t.Errorf("GetData = (%v, %v)", v, ok)
	}

	m.ClearState(1)
	if got := m.GetState(1); got != StateNone {
		t.Errorf("после очистки состояние %q", got)
	}
	if _, ok := m.GetData(1, "event_day"); ok {
		t.Error("данные должны очищаться вместе с состоянием")
	}
}

func TestSetStateNoneDropsEntry(t *testing.T) {
	m := NewManager()
	m.SetState(1, StateEventAwaitLabel)
	m.SetData(1, "event_time", "5:30 PM")

	m.SetState(1, StateNone)
	if _, ok := m.GetData(1, "event_time"); ok {
		t.Error("StateNone удаляет запись целиком вместе с данными")
	}
}

func TestGetAllDataReturnsCopy(t *testing.T) {
	m := NewManager()
	m.SetData(1, "a", "x")

	data := m.GetAllData(1)
	data["a"] = "подмена"

	if v, _ := m.GetData(1, "a"); v != "x" {
		t.Errorf("мутация копии протекла в менеджер: %v", v)
	}
}

func TestStatesIsolatedPerUser(t *testing.T) {
	m := NewManager()
	m.SetState(1, StateEventAwaitDate)

	if got := m.GetState(2); got != StateNone {
		t.Errorf("состояние чужого пользователя %q", got)
	}
}
