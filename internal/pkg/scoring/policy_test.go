package scoring

import (
	"errors"
	"testing"
)

func TestResolveWeight(t *testing.T) {
	cases := []struct {
		kind   Kind
		weight int
	}{
		{KindAssetCreated, 50},
		{KindTranslationAdded, 15},
		{KindMajorEdit, 10},
		{KindImageAdded, 8},
		{KindCitationAdded, 5},
		{KindMinorEdit, 3},
		{KindTagAdded, 2},
		{KindComment, 1},
	}

	for _, c := range cases {
		w, err := ResolveWeight(c.kind)
		if err != nil {
			t.Fatalf("ResolveWeight(%s) error: %v", c.kind, err)
		}
		if w != c.weight {
			t.Errorf("ResolveWeight(%s) = %d, want %d", c.kind, w, c.weight)
		}
	}
}

func TestResolveWeightUnknownKind(t *testing.T) {
	w, err := ResolveWeight(Kind("NOT_A_KIND"))
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("ResolveWeight(NOT_A_KIND) err = %v, want ErrUnknownKind", err)
	}
	if w != 0 {
		t.Errorf("ResolveWeight(NOT_A_KIND) weight = %d, want 0", w)
	}
}

func TestAllWeightsPositive(t *testing.T) {
	for _, k := range AllKinds() {
		w, err := ResolveWeight(k)
		if err != nil {
			t.Fatalf("ResolveWeight(%s) error: %v", k, err)
		}
		if w <= 0 {
			t.Errorf("kind %s has non-positive weight %d", k, w)
		}
	}
}
