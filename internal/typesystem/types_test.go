package typesystem

import "testing"

func TestTypeDisplay(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{IntType, "Int"},
		{UintType, "Uint"},
		{TList{Elem: IntType}, "List<Int>"},
		{TList{Elem: CharType}, "String"},
		{TList{Elem: TList{Elem: FloatType}}, "List<List<Float>>"},
		{TLit{Class: Num}, "Num"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestDefault(t *testing.T) {
	tests := []struct {
		in   Type
		want Type
	}{
		{TLit{Class: Num}, IntType},
		{TLit{Class: NegNum}, IntType},
		{TLit{Class: Flt}, FloatType},
		{UintType, UintType},
		{TList{Elem: TLit{Class: Num}}, TList{Elem: IntType}},
		{TList{Elem: TList{Elem: TLit{Class: Flt}}}, TList{Elem: TList{Elem: FloatType}}},
	}
	for _, tt := range tests {
		if got := Default(tt.in); !Equal(got, tt.want) {
			t.Errorf("Default(%s): expected %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestCoercibleTo(t *testing.T) {
	tests := []struct {
		class  LitClass
		target TCon
		want   bool
	}{
		{Num, IntType, true},
		{Num, UintType, true},
		{Num, FloatType, true},
		{Num, CharType, false},
		{NegNum, IntType, true},
		{NegNum, UintType, false},
		{NegNum, FloatType, true},
		{Flt, FloatType, true},
		{Flt, IntType, false},
		{Flt, UintType, false},
	}
	for _, tt := range tests {
		if got := CoercibleTo(tt.class, tt.target); got != tt.want {
			t.Errorf("CoercibleTo(%v, %s): expected %t, got %t", tt.class, tt.target, tt.want, got)
		}
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want Type
		ok   bool
	}{
		{"lit meets lit", TLit{Class: Num}, TLit{Class: Num}, TLit{Class: Num}, true},
		{"num meets negnum", TLit{Class: Num}, TLit{Class: NegNum}, TLit{Class: NegNum}, true},
		{"num meets flt", TLit{Class: Num}, TLit{Class: Flt}, TLit{Class: Flt}, true},
		{"negnum meets flt", TLit{Class: NegNum}, TLit{Class: Flt}, TLit{Class: Flt}, true},
		{"concrete pins lit", TLit{Class: Num}, UintType, UintType, true},
		{"negnum rejects uint", TLit{Class: NegNum}, UintType, nil, false},
		{"flt rejects int", TLit{Class: Flt}, IntType, nil, false},
		{"equal concrete", IntType, IntType, IntType, true},
		{"unequal concrete", IntType, UintType, nil, false},
		{"char vs num lit", CharType, TLit{Class: Num}, nil, false},
		{"lists elementwise", TList{Elem: TLit{Class: Num}}, TList{Elem: UintType}, TList{Elem: UintType}, true},
		{"list vs scalar", TList{Elem: IntType}, IntType, nil, false},
		{"nested lists", TList{Elem: TList{Elem: TLit{Class: Flt}}}, TList{Elem: TList{Elem: FloatType}}, TList{Elem: TList{Elem: FloatType}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Combine(tt.a, tt.b)
			if ok != tt.ok {
				t.Fatalf("expected ok=%t, got %t", tt.ok, ok)
			}
			if ok && !Equal(got, tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCombineIsSymmetric(t *testing.T) {
	pairs := []struct{ a, b Type }{
		{TLit{Class: Num}, UintType},
		{TLit{Class: NegNum}, TLit{Class: Flt}},
		{TList{Elem: TLit{Class: Num}}, TList{Elem: FloatType}},
	}
	for _, p := range pairs {
		ab, okAB := Combine(p.a, p.b)
		ba, okBA := Combine(p.b, p.a)
		if okAB != okBA {
			t.Fatalf("Combine(%s, %s) symmetry broken", p.a, p.b)
		}
		if okAB && !Equal(ab, ba) {
			t.Errorf("Combine(%s, %s): %s vs %s", p.a, p.b, ab, ba)
		}
	}
}

func TestByName(t *testing.T) {
	typ, ok := ByName("String")
	if !ok {
		t.Fatal("String not found")
	}
	if !Equal(typ, TList{Elem: CharType}) {
		t.Errorf("String should expand to List<Char>, got %s", typ)
	}
	if _, ok := ByName("List"); ok {
		t.Error("bare List must not resolve to a type")
	}
}

func TestSignatureTable(t *testing.T) {
	sig, ok := Lookup("add")
	if !ok {
		t.Fatal("add not registered")
	}
	if sig.Arity() != 2 || sig.Special {
		t.Errorf("add: unexpected shape %+v", sig)
	}

	sig, ok = Lookup("split")
	if !ok {
		t.Fatal("split not registered")
	}
	if sig.Return.ListDepth != 2 {
		t.Errorf("split must return a nested list, got depth %d", sig.Return.ListDepth)
	}

	for _, name := range []string{"if", "while", "def", "init", "set", "eval"} {
		sig, ok := Lookup(name)
		if !ok {
			t.Fatalf("%s not registered", name)
		}
		if !sig.Special {
			t.Errorf("%s must be marked special", name)
		}
	}

	if _, ok := Lookup("map"); ok {
		t.Error("unknown operator must not resolve")
	}
}
