package mq

import (
	"context"
	"encoding/json"
	"log"

	"wayfare/models"
	"wayfare/rdx"
	"wayfare/search"
)

// Emit publishes indexing events to Redis instead of running them inline.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), "indexing-events", data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event %s to Redis: %v", eventName, err)
		return
	}
}

func StartIndexingWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, "indexing-events")
	ch := sub.Channel()

	log.Println("[IndexingWorker] Listening for indexing events...")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[IndexingWorker] Failed to parse event: %v", err)
			continue
		}

		if err := search.IndexDatainRedis(ctx, event); err != nil {
			log.Printf("[IndexingWorker] IndexDatainRedis error: %v", err)
		}
	}
}
