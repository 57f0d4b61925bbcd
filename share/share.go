package share

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"wayfare/db"
	"wayfare/models"
	"wayfare/placedetail"
	"wayfare/tourapi"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

var fetcher = placedetail.NewFetcher(tourapi.NewClientFromEnv())

func shareURL(scheduleID string) string {
	base := os.Getenv("PUBLIC_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return fmt.Sprintf("%s/courses/%s", base, scheduleID)
}

func loadSchedule(ctx context.Context, scheduleID, userID string) (models.Schedule, error) {
	var sched models.Schedule
	err := db.SchedulesCollection.FindOne(ctx, bson.M{"scheduleid": scheduleID, "userid": userID}).Decode(&sched)
	return sched, err
}

// GET /api/shares/course/:scheduleid/qr
func CourseQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	scheduleID := ps.ByName("scheduleid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := loadSchedule(ctx, scheduleID, userID); err != nil {
		http.Error(w, "Schedule not found", http.StatusNotFound)
		return
	}

	png, err := qrcode.Encode(shareURL(scheduleID), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// GET /api/shares/course/:scheduleid/pdf
// Renders a day-by-day itinerary with place titles resolved through the
// detail fetcher, plus a QR code linking back to the course.
func CoursePDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	scheduleID := ps.ByName("scheduleid")

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	sched, err := loadSchedule(ctx, scheduleID, userID)
	if err != nil {
		http.Error(w, "Schedule not found", http.StatusNotFound)
		return
	}

	// Resolve titles for every spot before rendering.
	var ids []int
	for _, day := range sched.Courses {
		for _, spot := range day.Spots {
			if id, err := strconv.Atoi(spot.PlaceID); err == nil && id != 0 {
				ids = append(ids, id)
			}
		}
	}
	resolved := fetcher.Resolve(ctx, ids)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 15, sched.Title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s - %s", sched.StartDate, sched.EndDate), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	for _, day := range sched.Courses {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, fmt.Sprintf("Day %d", day.Day), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)

		for i, spot := range day.Spots {
			title := spot.PlaceID
			if id, err := strconv.Atoi(spot.PlaceID); err == nil {
				if entry, ok := resolved[id]; ok && entry.Title != "" {
					title = entry.Title
				}
			}
			pdf.CellFormat(0, 8, fmt.Sprintf("%d. %s", i+1, title), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	qrPNG, err := qrcode.Encode(shareURL(scheduleID), qrcode.Medium, 128)
	if err == nil {
		imgOpts := gofpdf.ImageOptions{ImageType: "png"}
		pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrPNG))
		pdf.ImageOptions("qr", 150, 240, 40, 40, false, imgOpts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", utils.SanitizeFilename(sched.Title)))
	w.Write(buf.Bytes())
}
