package qecdlp

import (
	"errors"
	"math/big"
	"testing"
)

func TestDecode_IdealHistogram(t *testing.T) {
	params := QDay7Bit()
	layout := LayoutForCurve(params)
	hist, err := IdealHistogram(params, layout, sevenBitKey, 100000)
	if err != nil {
		t.Fatalf("IdealHistogram: %v", err)
	}

	decoded, err := NewDecoder().Decode(hist, params, layout)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Key.Cmp(sevenBitKey) != 0 {
		t.Errorf("decoded key = %s, want 56", decoded.Key)
	}
	if decoded.Outcome.Bits != "0100101100000011" {
		t.Errorf("decoded from outcome %s, want the v=1 peak", decoded.Outcome.Bits)
	}
}

func TestDecode_NoisyHistogram(t *testing.T) {
	params := QDay7Bit()
	layout := LayoutForCurve(params)

	peak, err := EncodePeak(params, layout, sevenBitKey, big.NewInt(1))
	if err != nil {
		t.Fatalf("EncodePeak: %v", err)
	}

	// Junk outcomes rank above the true peak; decoding still succeeds
	// because every candidate is verified against the public point.
	hist := Histogram{
		"1111111111111111": 5000,
		"0000000000000001": 4000,
		peak:               1000,
	}
	decoded, err := NewDecoder().Decode(hist, params, layout)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Key.Cmp(sevenBitKey) != 0 {
		t.Errorf("decoded key = %s, want 56", decoded.Key)
	}
}

func TestDecode_MultiplePeaks(t *testing.T) {
	params := QDay7Bit()
	layout := LayoutForCurve(params)

	// Peaks for several register multiples, like a real measurement.
	hist := Histogram{}
	for _, v := range []int64{1, 2, 3, 5} {
		bits, err := EncodePeak(params, layout, sevenBitKey, big.NewInt(v))
		if err != nil {
			t.Fatalf("EncodePeak(v=%d): %v", v, err)
		}
		hist[bits] += 25000
	}

	decoded, err := NewDecoder().Decode(hist, params, layout)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Key.Cmp(sevenBitKey) != 0 {
		t.Errorf("decoded key = %s, want 56", decoded.Key)
	}
}

func TestDecode_EmptyHistogram(t *testing.T) {
	params := QDay7Bit()
	layout := LayoutForCurve(params)

	_, err := NewDecoder().Decode(Histogram{}, params, layout)
	var failed *RecoveryFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected *RecoveryFailedError, got %v", err)
	}
	if failed.Outcomes != 0 || failed.Candidates != 0 {
		t.Errorf("empty histogram reported %d outcomes, %d candidates", failed.Outcomes, failed.Candidates)
	}
}

func TestDecode_AllJunk(t *testing.T) {
	params := QDay7Bit()
	layout := LayoutForCurve(params)

	// No outcome decodes to the key; the decoder reports failure instead
	// of returning an unverified guess.
	hist := Histogram{
		"1111111111111111": 500,
		"0000000000000000": 300,
	}
	_, err := NewDecoder().Decode(hist, params, layout)
	var failed *RecoveryFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected *RecoveryFailedError, got %v", err)
	}
}

func TestDecode_CandidateBudget(t *testing.T) {
	params := QDay7Bit()
	layout := LayoutForCurve(params)

	hist := Histogram{
		"1111111111111111": 500,
		"1010101010101010": 300,
	}
	decoder := NewDecoder().WithConfig(DecoderConfig{TopK: 100, MaxCandidates: 1})
	_, err := decoder.Decode(hist, params, layout)
	var failed *RecoveryFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected *RecoveryFailedError, got %v", err)
	}
	if failed.Candidates > 1 {
		t.Errorf("checked %d candidates, budget was 1", failed.Candidates)
	}
}

func TestDecode_TopKCut(t *testing.T) {
	params := QDay7Bit()
	layout := LayoutForCurve(params)

	peak, err := EncodePeak(params, layout, sevenBitKey, big.NewInt(1))
	if err != nil {
		t.Fatalf("EncodePeak: %v", err)
	}

	// The true peak ranks second; TopK=1 never reaches it.
	hist := Histogram{
		"1111111111111111": 900,
		peak:               100,
	}
	decoder := NewDecoder().WithConfig(DecoderConfig{TopK: 1, MaxCandidates: 4096})
	if _, err := decoder.Decode(hist, params, layout); err == nil {
		t.Fatal("expected failure with TopK=1 and the peak ranked second")
	}

	// TopK=2 reaches it.
	decoder = NewDecoder().WithConfig(DecoderConfig{TopK: 2, MaxCandidates: 4096})
	decoded, err := decoder.Decode(hist, params, layout)
	if err != nil {
		t.Fatalf("Decode with TopK=2: %v", err)
	}
	if decoded.Key.Cmp(sevenBitKey) != 0 {
		t.Errorf("decoded key = %s, want 56", decoded.Key)
	}
}

func TestDecode_BadWidth(t *testing.T) {
	params := QDay7Bit()
	layout := LayoutForCurve(params)
	if _, err := NewDecoder().Decode(Histogram{"0101": 10}, params, layout); err == nil {
		t.Fatal("expected error for wrong-width outcome")
	}
}

func TestDecode_Deterministic(t *testing.T) {
	params := QDay7Bit()
	layout := LayoutForCurve(params)

	hist := Histogram{}
	for _, v := range []int64{1, 2, 3} {
		bits, err := EncodePeak(params, layout, sevenBitKey, big.NewInt(v))
		if err != nil {
			t.Fatalf("EncodePeak: %v", err)
		}
		hist[bits] = 1000 // all tied
	}

	first, err := NewDecoder().Decode(hist, params, layout)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for run := 0; run < 10; run++ {
		again, err := NewDecoder().Decode(hist, params, layout)
		if err != nil {
			t.Fatalf("Decode run %d: %v", run, err)
		}
		if again.Key.Cmp(first.Key) != 0 || again.Outcome != first.Outcome {
			t.Fatalf("decode result changed between runs: %v vs %v", again, first)
		}
	}
}

func TestTally(t *testing.T) {
	params := QDay7Bit()
	layout := LayoutForCurve(params)

	peak1, _ := EncodePeak(params, layout, sevenBitKey, big.NewInt(1))
	peak2, _ := EncodePeak(params, layout, sevenBitKey, big.NewInt(2))
	hist := Histogram{
		peak1:              60000,
		peak2:              30000,
		"1111111111111111": 10000,
	}

	correct, wrong := NewDecoder().Tally(hist, params, layout, sevenBitKey)
	if correct != 90000 {
		t.Errorf("correct = %d, want 90000", correct)
	}
	if wrong != 10000 {
		t.Errorf("wrong = %d, want 10000", wrong)
	}
}
