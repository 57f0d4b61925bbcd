package search

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"wayfare/models"
	"wayfare/rdx"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
)

// Autocomplete zsets keyed per entity type, e.g. autocomplete:course.
func autocompleteKey(entityType string) string {
	return fmt.Sprintf("autocomplete:%s", strings.ToLower(entityType))
}

type zsetOp int

const (
	opNone zsetOp = iota
	opAdd
	opRemove
)

// opFor maps an index event onto the zset mutation it requires. Events
// without a member carry nothing to add or remove.
func opFor(event models.Index) zsetOp {
	if event.ItemId == "" {
		return opNone
	}
	switch event.Method {
	case "POST", "PUT", "PATCH":
		return opAdd
	case "DELETE":
		return opRemove
	}
	return opNone
}

// IndexDatainRedis maintains the autocomplete index for an emitted event.
// Members are the indexed titles, so delete and rename events must carry the
// title being dropped in ItemId.
func IndexDatainRedis(ctx context.Context, event models.Index) error {
	key := autocompleteKey(event.EntityType)

	switch opFor(event) {
	case opAdd:
		return rdx.Conn.ZAdd(ctx, key, redis.Z{
			Score:  0,
			Member: event.ItemId,
		}).Err()
	case opRemove:
		return rdx.Conn.ZRem(ctx, key, event.ItemId).Err()
	}
	return nil
}

// GET /api/search/autocomplete?type=course&q=se
func Autocomplete(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	entityType := r.URL.Query().Get("type")
	if entityType == "" {
		entityType = "course"
	}
	prefix := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if prefix == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Query is required")
		return
	}

	// Lexicographic range scan over the zset; all members have score 0.
	results, err := rdx.Conn.ZRangeByLex(r.Context(), autocompleteKey(entityType), &redis.ZRangeBy{
		Min:    "[" + prefix,
		Max:    "[" + prefix + "\xff",
		Offset: 0,
		Count:  10,
	}).Result()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Autocomplete lookup failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "suggestions": results})
}
