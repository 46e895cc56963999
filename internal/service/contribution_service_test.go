package service

import (
	"Mythica/internal/pkg/mongo"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeMetadataDropsUnknownKeys(t *testing.T) {
	in := map[string]interface{}{
		"edit_summary": "fixed the genealogy section",
		"injected":     "value",
		"__proto__":    "x",
	}

	out := sanitizeMetadata(in)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out["edit_summary"] != "fixed the genealogy section" {
		t.Errorf("edit_summary = %v", out["edit_summary"])
	}
}

func TestSanitizeMetadataTruncatesLongStrings(t *testing.T) {
	// 中英文混合，按字符数而不是字节数截断
	long := strings.Repeat("修", 600)
	out := sanitizeMetadata(map[string]interface{}{"edit_summary": long})

	got, ok := out["edit_summary"].(string)
	if !ok {
		t.Fatal("edit_summary missing")
	}
	if n := utf8.RuneCountInString(got); n != 500 {
		t.Errorf("rune count = %d, want 500", n)
	}
}

func TestSanitizeMetadataTypeChecks(t *testing.T) {
	in := map[string]interface{}{
		"edit_summary":       42,     // 字符串键给了数字
		"characters_changed": "many", // 数字键给了字符串
		"is_revert":          true,
		"citation_count":     float64(3),
	}

	out := sanitizeMetadata(in)
	if _, ok := out["edit_summary"]; ok {
		t.Error("edit_summary with wrong type should be dropped")
	}
	if _, ok := out["characters_changed"]; ok {
		t.Error("characters_changed with wrong type should be dropped")
	}
	if out["is_revert"] != true {
		t.Errorf("is_revert = %v, want true", out["is_revert"])
	}
	if out["citation_count"] != float64(3) {
		t.Errorf("citation_count = %v, want 3", out["citation_count"])
	}
}

func TestSanitizeMetadataEmpty(t *testing.T) {
	if out := sanitizeMetadata(nil); out != nil {
		t.Errorf("nil in = %v, want nil", out)
	}
	if out := sanitizeMetadata(map[string]interface{}{"unknown": 1}); out != nil {
		t.Errorf("all dropped = %v, want nil", out)
	}
}

func TestHitMilestone(t *testing.T) {
	cases := []struct {
		total int64
		want  int64
		hit   bool
	}{
		{9, 0, false},
		{10, 10, true},
		{11, 0, false},
		{24, 0, false},
		{25, 25, true},
		{26, 0, false},
		{1000, 1000, true},
		{1001, 0, false},
	}

	for _, c := range cases {
		got, hit := hitMilestone(c.total)
		if hit != c.hit || got != c.want {
			t.Errorf("hitMilestone(%d) = (%d, %v), want (%d, %v)", c.total, got, hit, c.want, c.hit)
		}
	}
}

func TestMatchesFilter(t *testing.T) {
	r := rec(7, "alice", 10)
	r.AssetID = "asset-1"

	if !matchesFilter(r, toActivityFilter(nil)) {
		t.Error("empty filter should match everything")
	}
	if !matchesFilter(r, mongo.ActivityFilter{UserID: 7, AssetID: "asset-1"}) {
		t.Error("exact filter should match")
	}
	if matchesFilter(r, mongo.ActivityFilter{UserID: 8}) {
		t.Error("other user should not match")
	}
	if matchesFilter(r, mongo.ActivityFilter{AssetID: "asset-2"}) {
		t.Error("other asset should not match")
	}
}
