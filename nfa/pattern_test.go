package nfa

import "testing"

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"zero int", 0, true},
		{"empty string", "", true},
		{"nonzero int", 9, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.v); got != tt.want {
				t.Errorf("Truthy(%#v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestSeqFlattensNestedSeq(t *testing.T) {
	a := Literal[string, string]("a")
	b := Literal[string, string]("b")
	c := Literal[string, string]("c")

	nested := Seq[string, string](Seq[string, string](a, b), c)
	flat := Seq[string, string](a, b, c)

	if nested.String() != flat.String() {
		t.Errorf("nested Seq did not flatten: got %q, want %q", nested.String(), flat.String())
	}
}

func TestSeqSingleElementUnwraps(t *testing.T) {
	a := Literal[string, string]("a")
	got := Seq[string, string](a)
	if got != Pattern[string, string](a) {
		t.Errorf("Seq of one element should return that element unchanged")
	}
}

func TestRepRejectsInvalidBounds(t *testing.T) {
	a := Literal[string, string]("a")
	three := 3

	if _, err := Rep[string, string](a, -1, nil); err == nil {
		t.Error("Rep with mn < 0 should error")
	}
	one := 1
	if _, err := Rep[string, string](a, three, &one); err == nil {
		t.Error("Rep with mx < mn should error")
	}
	if _, err := Rep[string, string](a, 0, &three); err != nil {
		t.Errorf("Rep(0, 3) should be valid, got %v", err)
	}
}

func TestMustRepPanicsOnInvalidBounds(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustRep should panic on invalid bounds")
		}
	}()
	a := Literal[string, string]("a")
	MustRep[string, string](a, -1, nil)
}

func TestStringRendering(t *testing.T) {
	a := Literal[string, string]("a")
	b := Literal[string, string]("b")

	tests := []struct {
		name string
		p    Pattern[string, string]
		want string
	}{
		{"literal", a, `Literal(a)`},
		{"any", Any[string, string](), "Any()"},
		{"either", Either[string, string](a, b), "(Literal(a) | Literal(b))"},
		{"seq", Seq[string, string](a, b), "(Literal(a) + Literal(b))"},
		{"star greedy", Star[string, string](a), "Literal(a)*"},
		{"star lazy", Star[string, string](a, Lazy()), "Literal(a)*?"},
		{"plus greedy", Plus[string, string](a), "Literal(a)+"},
		{"question lazy", Question[string, string](a, Lazy()), "Literal(a)??"},
		{"group", Group[string, string](a, "g"), "Group(Literal(a), g)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
