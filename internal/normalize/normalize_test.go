package normalize

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func TestNormalize(t *testing.T) {
	n := New(zap.NewNop())

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases and trims", "  Hongdae Street  ", "hongdae street"},
		{"strips stopwords", "festivals in the seoul area", "festivals seoul area"},
		{"alias expansion", "ddp exhibition", "dongdaemun design plaza exhibition"},
		{"korean alias", "경복궁 입장료", "gyeongbokgung palace 입장료"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := New(zap.NewNop())

	inputs := []string{
		"ddp exhibition",
		"경복궁 근처 맛집",
		"the namsan tower at night",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestVariants(t *testing.T) {
	n := New(zap.NewNop())

	t.Run("original always first", func(t *testing.T) {
		got := n.Variants("Hongdae Street")
		if len(got) == 0 || got[0] != "Hongdae Street" {
			t.Fatalf("expected original keyword first, got %v", got)
		}
	})

	t.Run("locale qualifier for short unanchored keyword", func(t *testing.T) {
		got := n.Variants("hongdae")
		want := []string{"hongdae", "hongdae seoul"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Variants = %v, want %v", got, want)
		}
	})

	t.Run("no qualifier when already anchored", func(t *testing.T) {
		for _, v := range n.Variants("hongdae seoul") {
			if v == "hongdae seoul seoul" {
				t.Error("locale qualifier appended to an anchored keyword")
			}
		}
	})

	t.Run("glossary substitution", func(t *testing.T) {
		got := n.Variants("서울 축제")
		found := false
		for _, v := range got {
			if v == "서울 festival" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected glossary variant in %v", got)
		}
	})

	t.Run("deduplicated", func(t *testing.T) {
		got := n.Variants("hongdae")
		seen := map[string]struct{}{}
		for _, v := range got {
			if _, ok := seen[v]; ok {
				t.Fatalf("duplicate variant %q in %v", v, got)
			}
			seen[v] = struct{}{}
		}
	})

	t.Run("capped", func(t *testing.T) {
		if got := n.Variants("The 축제 near DDP"); len(got) > maxVariants {
			t.Errorf("expected at most %d variants, got %d: %v", maxVariants, len(got), got)
		}
	})
}
