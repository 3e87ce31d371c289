package feedback

import "testing"

func TestNilHooksAreSafe(t *testing.T) {
	d := NewDispatcher(Hooks{}, nil)
	d.Click()
	d.CriticalClick()
	d.Purchase()
	d.Drink()
	d.LevelUp()
	d.Saved()
	d.Deleted()

	var nilDispatcher *Dispatcher
	nilDispatcher.Click()
}

func TestHooksFire(t *testing.T) {
	var got []string
	d := NewDispatcher(Hooks{
		Click:    func() { got = append(got, "click") },
		Purchase: func() { got = append(got, "purchase") },
		Deleted:  func() { got = append(got, "deleted") },
	}, nil)

	d.Click()
	d.Purchase()
	d.Drink()
	d.Deleted()

	if len(got) != 3 || got[0] != "click" || got[1] != "purchase" || got[2] != "deleted" {
		t.Errorf("fired = %v, want [click purchase deleted]", got)
	}
}

func TestPanickingHookIsSwallowed(t *testing.T) {
	d := NewDispatcher(Hooks{Click: func() { panic("speaker unplugged") }}, nil)
	d.Click()
}
