package events

import "testing"

func TestBus_RegistrationOrder(t *testing.T) {
	bus := NewBus()

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		bus.On(Click, func(Event) { order = append(order, i) })
	}

	bus.Emit(New(Click))

	if len(order) != 3 {
		t.Fatalf("Expected 3 calls, got %d", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Errorf("Handler %d ran at position %d", v, i)
		}
	}
}

func TestBus_KindsAreIsolated(t *testing.T) {
	bus := NewBus()

	clicks := 0
	bus.On(Click, func(Event) { clicks++ })

	bus.Emit(New(Scroll))
	if clicks != 0 {
		t.Errorf("Click handler ran for scroll event")
	}
}

func TestBus_Off(t *testing.T) {
	bus := NewBus()

	calls := 0
	off := bus.On(Scroll, func(Event) { calls++ })
	bus.Emit(New(Scroll))
	off()
	off()
	bus.Emit(New(Scroll))

	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
	if bus.Len(Scroll) != 0 {
		t.Errorf("Expected no handlers left, got %d", bus.Len(Scroll))
	}
}

func TestBus_HandlerAddedDuringEmit(t *testing.T) {
	bus := NewBus()

	late := 0
	bus.On(Load, func(Event) {
		bus.On(Load, func(Event) { late++ })
	})

	bus.Emit(New(Load))
	if late != 0 {
		t.Errorf("Handler added during emit should not run for that emit")
	}

	bus.Emit(New(Load))
	if late != 1 {
		t.Errorf("Expected late handler to run once, got %d", late)
	}
}

func TestBasic_PreventDefault(t *testing.T) {
	ev := New(Submit)
	if ev.DefaultPrevented() {
		t.Fatal("New event should not be prevented")
	}

	bus := NewBus()
	bus.On(Submit, func(e Event) { e.PreventDefault() })
	bus.Emit(ev)

	if !ev.DefaultPrevented() {
		t.Error("Expected default to be prevented")
	}
}
