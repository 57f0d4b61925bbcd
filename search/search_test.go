package search

import (
	"context"
	"testing"

	"wayfare/models"
)

func TestOpFor(t *testing.T) {
	cases := []struct {
		name  string
		event models.Index
		want  zsetOp
	}{
		{"create adds title", models.Index{Method: "POST", ItemId: "Jeju"}, opAdd},
		{"rename adds new title", models.Index{Method: "PATCH", ItemId: "Busan"}, opAdd},
		{"delete removes title", models.Index{Method: "DELETE", ItemId: "Jeju"}, opRemove},
		{"delete without member is a no-op", models.Index{Method: "DELETE"}, opNone},
		{"create without member is a no-op", models.Index{Method: "POST"}, opNone},
		{"unknown method is a no-op", models.Index{Method: "GET", ItemId: "Jeju"}, opNone},
	}
	for _, c := range cases {
		if got := opFor(c.event); got != c.want {
			t.Errorf("%s: opFor(%+v) = %d, want %d", c.name, c.event, got, c.want)
		}
	}
}

func TestIndexDatainRedisSkipsEmptyMember(t *testing.T) {
	// An event without a member must return before any redis command is
	// issued; otherwise a DELETE would remove the empty-string member and
	// leave the indexed title behind forever.
	event := models.Index{EntityType: "course", EntityId: "s1", Method: "DELETE"}
	if err := IndexDatainRedis(context.Background(), event); err != nil {
		t.Fatalf("empty-member event must be a no-op, got %v", err)
	}
}

func TestAutocompleteKey(t *testing.T) {
	if got := autocompleteKey("Course"); got != "autocomplete:course" {
		t.Fatalf("unexpected key %q", got)
	}
}
