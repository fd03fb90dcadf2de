package qecdlp

import "testing"

func TestHistogramTotalShots(t *testing.T) {
	hist := Histogram{"0101": 40, "1010": 50, "1111": 10}
	if got := hist.TotalShots(); got != 100 {
		t.Errorf("TotalShots = %d, want 100", got)
	}
	if got := (Histogram{}).TotalShots(); got != 0 {
		t.Errorf("empty TotalShots = %d, want 0", got)
	}
}

func TestHistogramRanked(t *testing.T) {
	hist := Histogram{
		"0011": 5,
		"1100": 90,
		"0001": 5,
		"0110": 20,
	}

	ranked := hist.Ranked()
	want := []Outcome{
		{"1100", 90},
		{"0110", 20},
		{"0001", 5}, // ties resolved by ascending bitstring
		{"0011", 5},
	}
	if len(ranked) != len(want) {
		t.Fatalf("got %d outcomes, want %d", len(ranked), len(want))
	}
	for i := range want {
		if ranked[i] != want[i] {
			t.Errorf("ranked[%d] = %v, want %v", i, ranked[i], want[i])
		}
	}
}

func TestHistogramRanked_Deterministic(t *testing.T) {
	hist := Histogram{}
	for _, bits := range []string{"0000", "0001", "0010", "0011", "0100", "0101"} {
		hist[bits] = 7 // all tied
	}

	first := hist.Ranked()
	for run := 0; run < 10; run++ {
		again := hist.Ranked()
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("ranking changed between runs at index %d: %v vs %v", i, first[i], again[i])
			}
		}
	}
}

func TestHistogramValidate(t *testing.T) {
	layout := RegisterLayout{JBits: 2, KBits: 2}

	if err := (Histogram{"0101": 1, "1111": 2}).Validate(layout); err != nil {
		t.Errorf("valid histogram rejected: %v", err)
	}
	if err := (Histogram{"010": 1}).Validate(layout); err == nil {
		t.Error("expected width error for 3-char outcome")
	}
	if err := (Histogram{"01x1": 1}).Validate(layout); err == nil {
		t.Error("expected error for non-binary outcome")
	}
}
