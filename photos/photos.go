package photos

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"wayfare/db"
	"wayfare/models"
	"wayfare/rdx"
	"wayfare/tourapi"
	"wayfare/utils"
	"wayfare/vision"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	labeler = vision.NewClientFromEnv()
	catalog = tourapi.NewClientFromEnv()
)

const photoDir = "static/photopic"

// POST /api/photos
// Accepts a multipart "photo", stores the resized image plus a thumbnail,
// runs label detection and translation, and indexes the labels for search.
func UploadPhoto(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "Photo file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		http.Error(w, "Invalid image", http.StatusBadRequest)
		return
	}

	if err := utils.EnsureDir(photoDir); err != nil {
		http.Error(w, "Storage unavailable", http.StatusInternalServerError)
		return
	}

	photoID := utils.GetUUID()
	ext := filepath.Ext(utils.SanitizeFilename(header.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	originalPath := filepath.Join(photoDir, photoID+ext)
	thumbPath := filepath.Join(photoDir, photoID+"_thumb"+ext)

	// Cap stored size; the original upload can be arbitrarily large.
	stored := img
	if img.Bounds().Dx() > 1600 {
		stored = imaging.Resize(img, 1600, 0, imaging.Lanczos)
	}
	if err := imaging.Save(stored, originalPath); err != nil {
		http.Error(w, "Failed to save image", http.StatusInternalServerError)
		return
	}
	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbPath); err != nil {
		http.Error(w, "Failed to save thumbnail", http.StatusInternalServerError)
		return
	}

	// Label detection is best-effort; an unlabeled photo is still stored.
	labels, err := labeler.DetectLabels(r.Context(), raw, 5)
	if err != nil {
		log.Printf("label detection failed: %v", err)
		labels = nil
	}
	for i := range labels {
		labels[i] = strings.ToLower(labels[i])
	}

	var korean []string
	if len(labels) > 0 {
		korean, err = labeler.Translate(r.Context(), labels, "ko")
		if err != nil {
			log.Printf("label translation failed: %v", err)
			korean = nil
		}
	}

	photo := models.Photo{
		PhotoID:      photoID,
		UserID:       userID,
		Path:         originalPath,
		ThumbPath:    thumbPath,
		Labels:       labels,
		KoreanLabels: korean,
		CreatedAt:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.PhotosCollection.InsertOne(ctx, photo); err != nil {
		http.Error(w, "Failed to store photo", http.StatusInternalServerError)
		return
	}

	for _, label := range labels {
		if err := rdx.Conn.SAdd(ctx, fmt.Sprintf("photolabel:%s", label), photoID).Err(); err != nil {
			log.Printf("label index failed for %s: %v", label, err)
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"ok": true, "photo": photo})
}

// GET /api/photos/search?label=...
func SearchByLabel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	label := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("label")))
	if label == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Label is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	photos, err := utils.FindAndDecode[models.Photo](ctx, db.PhotosCollection, bson.M{"labels": label})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	if photos == nil {
		photos = []models.Photo{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "photos": photos})
}

// GET /api/photos/photo/:photoid/places
// Uses the photo's translated labels as tourism keyword queries.
func PlacesForPhoto(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	photoID := ps.ByName("photoid")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var photo models.Photo
	if err := db.PhotosCollection.FindOne(ctx, bson.M{"photoid": photoID}).Decode(&photo); err != nil {
		http.Error(w, "Photo not found", http.StatusNotFound)
		return
	}

	keywords := photo.KoreanLabels
	if len(keywords) == 0 {
		keywords = photo.Labels
	}

	var places []models.PlaceDetail
	seen := make(map[int]bool)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		results, err := catalog.SearchKeyword(ctx, kw, 1, 5)
		if err != nil {
			log.Printf("keyword search failed for %q: %v", kw, err)
			continue
		}
		for _, d := range results {
			if d.ContentID != 0 && seen[d.ContentID] {
				continue
			}
			seen[d.ContentID] = true
			places = append(places, d)
		}
	}
	if places == nil {
		places = []models.PlaceDetail{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "places": places})
}
