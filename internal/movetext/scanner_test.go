package movetext

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// scanClasses runs a full scan and returns one class per input byte.
func scanClasses(sc Scanner, text string) []Class {
	classes := make([]Class, 0, len(text))
	sc.Scan(text, func(_ byte, class Class, _ State) bool {
		classes = append(classes, class)
		return true
	})
	return classes
}

func TestScanner_BraceComment(t *testing.T) {
	sc := Scanner{Comments: true, Variations: true}
	// Inside a brace comment, ';', '(' and a second '{' are content.
	got := scanClasses(sc, `e{;({x}f`)
	want := []Class{
		Plain,        // e
		EnterComment, // {
		InComment,    // ;
		InComment,    // (
		InComment,    // {
		InComment,    // x
		ExitComment,  // }
		Plain,        // f
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("classes mismatch (-want +got):\n%s", diff)
	}
}

func TestScanner_LineComment(t *testing.T) {
	sc := Scanner{Comments: true, Variations: true}
	got := scanClasses(sc, "e4 ;x}\ne5")
	want := []Class{
		Plain, Plain, Plain, // "e4 "
		EnterComment,          // ;
		InComment, InComment,  // x}
		ExitComment,           // \n ends the comment
		Plain, Plain,          // e5
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("classes mismatch (-want +got):\n%s", diff)
	}
}

func TestScanner_VariationDepth(t *testing.T) {
	sc := Scanner{Comments: true, Variations: true}

	var depths []int
	sc.Scan("a(b(c)d)e", func(_ byte, _ Class, st State) bool {
		depths = append(depths, st.Depth)
		return true
	})

	want := []int{0, 1, 1, 2, 2, 1, 1, 0, 0}
	if diff := cmp.Diff(want, depths); diff != "" {
		t.Errorf("depths mismatch (-want +got):\n%s", diff)
	}

	got := scanClasses(sc, "a(b(c)d)e")
	wantClasses := []Class{
		Plain,
		EnterVariation,
		InVariation,
		EnterVariation,
		InVariation,
		ExitVariation,
		InVariation,
		ExitVariation,
		Plain,
	}
	if diff := cmp.Diff(wantClasses, got); diff != "" {
		t.Errorf("classes mismatch (-want +got):\n%s", diff)
	}
}

func TestScanner_CommentSuspendsVariationTracking(t *testing.T) {
	sc := Scanner{Comments: true, Variations: true}

	// The '(' and ')' inside the braces are comment content; depth must
	// stay zero throughout.
	sc.Scan("{(((}e4", func(_ byte, _ Class, st State) bool {
		if st.Depth != 0 {
			t.Errorf("Depth = %d inside comment, want 0", st.Depth)
		}
		return true
	})
}

func TestScanner_StrayClosers(t *testing.T) {
	type stray struct {
		Offset int
		Ch     byte
	}
	var strays []stray
	sc := Scanner{
		Comments:   true,
		Variations: true,
		OnStray:    func(offset int, ch byte) { strays = append(strays, stray{offset, ch}) },
	}

	got := scanClasses(sc, "e4 ) e5 } f4")
	want := []Class{
		Plain, Plain, Plain,
		ExitVariation, // stray ')'
		Plain, Plain, Plain, Plain,
		ExitComment, // stray '}'
		Plain, Plain, Plain,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("classes mismatch (-want +got):\n%s", diff)
	}

	wantStrays := []stray{{3, ')'}, {8, '}'}}
	if diff := cmp.Diff(wantStrays, strays); diff != "" {
		t.Errorf("strays mismatch (-want +got):\n%s", diff)
	}
	if st := sc.State(); st.Depth != 0 || st.InAnyComment() {
		t.Errorf("state after strays = %+v, want zero", st)
	}
}

func TestScanner_InterestFlags(t *testing.T) {
	tests := []struct {
		name string
		sc   Scanner
		text string
		want []Class
	}{
		{
			name: "comments off leaves braces plain",
			sc:   Scanner{Variations: true},
			text: "{;}",
			want: []Class{Plain, Plain, Plain},
		},
		{
			name: "variations off leaves parens plain",
			sc:   Scanner{Comments: true},
			text: "(x)",
			want: []Class{Plain, Plain, Plain},
		},
		{
			name: "zero value reacts to nothing",
			sc:   Scanner{},
			text: "{(}",
			want: []Class{Plain, Plain, Plain},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanClasses(tt.sc, tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("classes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanner_EarlyStop(t *testing.T) {
	sc := Scanner{Comments: true, Variations: true}
	seen := 0
	sc.Scan("abcdef", func(ch byte, _ Class, _ State) bool {
		seen++
		return ch != 'c'
	})
	if seen != 3 {
		t.Errorf("scanned %d bytes, want 3", seen)
	}
}

func TestScanner_StepAndReset(t *testing.T) {
	sc := Scanner{Comments: true, Variations: true}
	for _, ch := range []byte("{open") {
		sc.Step(ch)
	}
	if !sc.State().InBraceComment {
		t.Fatal("expected open brace comment after Step sequence")
	}
	sc.Reset()
	if st := sc.State(); st != (State{}) {
		t.Errorf("state after Reset = %+v, want zero", st)
	}
}
