package rdx

import (
	"log"
	"strconv"
	"strings"
	"time"

	"wayfare/db"
	"wayfare/globals"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Flush place view counters from Redis to MongoDB in bulk.
func FlushPlaceViews() {
	ticker := time.NewTicker(60 * time.Second)
	for range ticker.C {
		keys, err := Conn.Keys(globals.Ctx, "views:place:*").Result()
		if err != nil {
			log.Println("Redis scan error:", err)
			continue
		}

		for _, key := range keys {
			parts := strings.Split(key, ":")
			if len(parts) != 3 {
				log.Println("Invalid Redis view key format:", key)
				continue
			}
			contentID, err := strconv.Atoi(parts[2])
			if err != nil {
				log.Println("Invalid content id in view key:", key)
				continue
			}

			countStr, err := Conn.Get(globals.Ctx, key).Result()
			if err != nil {
				log.Println("Redis Get error for key", key, ":", err)
				continue
			}

			count, err := strconv.ParseInt(countStr, 10, 64)
			if err != nil {
				log.Println("Failed to parse view count:", countStr)
				continue
			}

			filter := bson.M{"contentid": contentID}
			update := bson.M{"$inc": bson.M{"views": count}}
			opts := options.Update().SetUpsert(true)

			if _, err := db.PlacesCollection.UpdateOne(globals.Ctx, filter, update, opts); err != nil {
				log.Println("MongoDB update error for place", contentID, ":", err)
				continue
			}

			if err := Conn.Del(globals.Ctx, key).Err(); err != nil {
				log.Println("Failed to delete Redis key:", key)
			}
		}
	}
}
