package profile

import "testing"

func TestNew(t *testing.T) {
	p := New(WithMode("cpu"), WithDir("/tmp/p"), WithQuiet(true))

	want := Profiler{Mode: "cpu", Dir: "/tmp/p", Quiet: true}
	if p != want {
		t.Errorf("New() = %+v, want %+v", p, want)
	}
}

func TestStart_Disabled(t *testing.T) {
	for _, mode := range []string{"", "bogus"} {
		s := New(WithMode(mode)).Start()
		if s == nil {
			t.Fatalf("Start(%q) returned nil", mode)
		}

		if _, ok := s.(ignore); !ok {
			t.Errorf("Start(%q) = %T, want no-op", mode, s)
		}

		s.Stop()
	}
}
