package home

import (
	"context"
	"encoding/json"
	"log"
	rndm "math/rand"
	"net/http"
	"strings"
	"time"

	"wayfare/db"
	"wayfare/models"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var routeHandlers = map[string]func() (interface{}, error){
	"featured": wrap(getFeaturedPlaces),
	"trends":   wrap(getTrends),
	"notices":  wrap(getNotices),
}

func wrap[T any](fn func() (T, error)) func() (any, error) {
	return func() (any, error) {
		return fn()
	}
}

func GetHomeContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	apiRoute := strings.ToLower(ps.ByName("section"))

	handler, ok := routeHandlers[apiRoute]
	if !ok {
		http.Error(w, `{"error":"Invalid API route"}`, http.StatusNotFound)
		return
	}

	data, err := handler()
	if err != nil {
		log.Printf("Error fetching %s: %v", apiRoute, err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=60")
	json.NewEncoder(w).Encode(data)
}

// Shuffle returns a Fisher-Yates shuffled copy of the slice.
func Shuffle[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rndm.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// getFeaturedPlaces serves the most-viewed places in randomized order so the
// homepage doesn't look identical on every load.
func getFeaturedPlaces() ([]models.PlaceDetail, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "views", Value: -1}}).SetLimit(20)
	places, err := utils.FindAndDecode[models.PlaceDetail](ctx, db.PlacesCollection, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	if places == nil {
		places = []models.PlaceDetail{}
	}
	return Shuffle(places), nil
}

func getTrends() ([]string, error) {
	return []string{"#Hanok", "#NightMarket", "#Beach", "#StreetFood"}, nil
}

func getNotices() ([]map[string]string, error) {
	return []map[string]string{
		{"title": "Spring festival courses are up", "link": "/notices/spring"},
		{"title": "Photo label search now supports Korean", "link": "/notices/labels"},
	}, nil
}
