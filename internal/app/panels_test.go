package app

import "testing"

func TestDigitFieldIgnoresLetters(t *testing.T) {
	f := &field{digits: true}
	if !f.insert([]rune("1a2")) || f.value != "12" {
		t.Fatalf("unexpected value: %q", f.value)
	}
	if f.insert([]rune("x")) {
		t.Fatalf("expected no change for letters")
	}
}

func TestFieldBackspaceRemovesWholeRune(t *testing.T) {
	f := &field{value: "café"}
	if !f.backspace() || f.value != "caf" {
		t.Fatalf("unexpected value: %q", f.value)
	}
	f.value = ""
	if f.backspace() {
		t.Fatalf("expected no change on an empty field")
	}
}

func TestPanelCycleWraps(t *testing.T) {
	p := &panel{fields: []*field{{}, {}}}
	p.cycle(1)
	if p.active != 1 {
		t.Fatalf("unexpected active field: %d", p.active)
	}
	p.cycle(1)
	if p.active != 0 {
		t.Fatalf("expected wrap to the first field: %d", p.active)
	}
	p.cycle(-1)
	if p.active != 1 {
		t.Fatalf("expected backwards wrap: %d", p.active)
	}
}

func TestFreshFieldIsReplacedByTyping(t *testing.T) {
	f := &field{value: "12", digits: true, fresh: true}
	f.insert([]rune("7"))
	if f.value != "7" {
		t.Fatalf("unexpected value: %q", f.value)
	}
	f.insert([]rune("3"))
	if f.value != "73" {
		t.Fatalf("unexpected value: %q", f.value)
	}
}
