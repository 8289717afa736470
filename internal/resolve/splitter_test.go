package resolve

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplitCompoundType(t *testing.T) {
	cases := []struct {
		expr string
		want []string
	}{
		{"int", []string{"int"}},
		{"weather.Temperature", []string{"weather.Temperature"}},
		{"List[OakLeaf]", []string{"List", "[", "OakLeaf", "]"}},
		{
			"Dict[str, List[weather.Temperature]]",
			[]string{"Dict", "[", "str", ",", "List", "[", "weather.Temperature", "]", "]"},
		},
		{"Tuple[float,float]", []string{"Tuple", "[", "float", ",", "float", "]"}},
	}
	for _, tc := range cases {
		got, err := SplitCompoundType(tc.expr, "greenhouse.plants.fern")
		if err != nil {
			t.Fatalf("SplitCompoundType(%q) error: %v", tc.expr, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitCompoundType(%q) = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestSplitCompoundTypeStripsForwardReferenceQuotes(t *testing.T) {
	got, err := SplitCompoundType("List['Branch']", "m")
	if err != nil {
		t.Fatalf("SplitCompoundType error: %v", err)
	}
	want := []string{"List", "[", "Branch", "]"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSplitCompoundTypeRejectsInvalidCharacters(t *testing.T) {
	_, err := SplitCompoundType("int | None", "m")
	if !errors.Is(err, ErrInvalidTypeExpression) {
		t.Fatalf("expected ErrInvalidTypeExpression, got %v", err)
	}
}
