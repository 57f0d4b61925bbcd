package places

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"wayfare/models"
	"wayfare/rdx"
	"wayfare/tourapi"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
)

var catalog = tourapi.NewClientFromEnv()

const detailCacheTTL = 6 * time.Hour

// GET /api/places/place/:contentid
func GetPlaceDetail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	contentID, err := strconv.Atoi(ps.ByName("contentid"))
	if err != nil {
		http.Error(w, "Invalid content id", http.StatusBadRequest)
		return
	}

	// Count the view; the rdx worker flushes counters to Mongo.
	rdx.RdxIncr(fmt.Sprintf("views:place:%d", contentID))

	cacheKey := fmt.Sprintf("placedetail:%d", contentID)
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	detail, err := catalog.PlaceDetail(r.Context(), contentID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Tourism catalog unavailable")
		return
	}

	// Absent or partial upstream data is still a 200 with empty fields.
	if detailJSON, err := json.Marshal(detail); err == nil {
		rdx.RdxSetWithExpiry(cacheKey, string(detailJSON), detailCacheTTL)
	}

	utils.RespondWithJSON(w, http.StatusOK, detail)
}

// GET /api/places/search?keyword=...&page=1&limit=10&contenttypeid=39
func SearchPlaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Keyword is required")
		return
	}

	skip, limit := utils.ParsePagination(r, 10, 50)
	page := int(skip/limit) + 1

	results, err := catalog.SearchKeyword(r.Context(), keyword, page, int(limit))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Tourism catalog unavailable")
		return
	}

	// Category filter happens client-side over the fetched page.
	if typeFilter := r.URL.Query().Get("contenttypeid"); typeFilter != "" {
		wanted, _ := strconv.Atoi(typeFilter)
		filtered := results[:0]
		for _, d := range results {
			if d.ContentTypeID == wanted {
				filtered = append(filtered, d)
			}
		}
		results = filtered
	}

	if results == nil {
		results = []models.PlaceDetail{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "places": results})
}

// GET /api/places/area/:areacode?contenttypeid=12&page=1&limit=10
func GetAreaPlaces(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	areaCode, err := strconv.Atoi(ps.ByName("areacode"))
	if err != nil {
		http.Error(w, "Invalid area code", http.StatusBadRequest)
		return
	}

	contentTypeID, _ := strconv.Atoi(r.URL.Query().Get("contenttypeid"))
	skip, limit := utils.ParsePagination(r, 10, 50)
	page := int(skip/limit) + 1

	results, err := catalog.AreaBasedList(r.Context(), areaCode, contentTypeID, page, int(limit))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Tourism catalog unavailable")
		return
	}

	if results == nil {
		results = []models.PlaceDetail{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "places": results})
}
