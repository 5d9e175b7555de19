package detectors

import (
	"reflect"
	"testing"
)

func TestNewKeywordDetector_Dedup(t *testing.T) {
	d := NewKeywordDetector([]string{"b", "a", "b", "c", "a"})
	if got := d.Keywords(); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("Keywords() = %v, want [b a c]", got)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		line     string
		want     []int
	}{
		{"substring", []string{"world"}, "hello world", []int{0}},
		{"case sensitive", []string{"World"}, "hello world", nil},
		{"no regex", []string{"a.c"}, "abc", nil},
		{"literal dot", []string{"a.c"}, "xa.cx", []int{0}},
		{"several", []string{"x", "hello", "lo w"}, "hello world", []int{1, 2}},
		{"html tag", []string{"<html>"}, "<!doctype><html>", []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewKeywordDetector(tt.keywords)
			got := d.Detect(tt.line, make([]bool, len(tt.keywords)))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Detect(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestFileMatch_RecordsOncePerFile(t *testing.T) {
	d := NewKeywordDetector([]string{"python", "go"})
	m := d.NewFileMatch()

	if got := m.Observe("python here"); !reflect.DeepEqual(got, []string{"python"}) {
		t.Errorf("Observe() = %v, want [python]", got)
	}
	for i := 0; i < 4; i++ {
		if got := m.Observe("python again"); got != nil {
			t.Errorf("Observe() repeat = %v, want nil", got)
		}
	}
	if m.Complete() {
		t.Error("Complete() = true before all keywords were seen")
	}
	if got := m.Observe("go and python"); !reflect.DeepEqual(got, []string{"go"}) {
		t.Errorf("Observe() = %v, want [go]", got)
	}
	if !m.Complete() {
		t.Error("Complete() = false after all keywords were seen")
	}
}

func TestFileMatch_Independent(t *testing.T) {
	d := NewKeywordDetector([]string{"x"})
	a := d.NewFileMatch()
	b := d.NewFileMatch()
	a.Observe("x")
	if got := b.Observe("x"); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("second file Observe() = %v, want [x]", got)
	}
}
