package routes

import (
	"net/http"

	"wayfare/auth"
	"wayfare/home"
	"wayfare/live"
	"wayfare/middleware"
	"wayfare/photos"
	"wayfare/places"
	"wayfare/ratelim"
	"wayfare/reviews"
	"wayfare/schedule"
	"wayfare/scrape"
	"wayfare/search"
	"wayfare/share"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/photopic/*filepath", http.Dir("static/photopic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
	router.GET("/api/auth/oauth/kakao/callback", ratelim.RateLimit(auth.KakaoCallback))
}

func AddScheduleRoutes(router *httprouter.Router) {
	router.POST("/api/schedules", ratelim.RateLimit(middleware.Authenticate(schedule.CreateSchedule)))
	router.GET("/api/schedules", middleware.Authenticate(schedule.GetSchedules))
	router.POST("/api/schedules/:scheduleid/spots", middleware.Authenticate(schedule.AddSpot))
	router.DELETE("/api/schedules/:scheduleid/spots/:placeid", middleware.Authenticate(schedule.RemoveSpot))
	router.PATCH("/api/schedules/:scheduleid", middleware.Authenticate(schedule.RenameSchedule))
	router.DELETE("/api/schedules/:scheduleid", middleware.Authenticate(schedule.DeleteSchedule))
}

func AddPlaceRoutes(router *httprouter.Router) {
	router.GET("/api/places/search", ratelim.RateLimit(places.SearchPlaces))
	router.GET("/api/places/area/:areacode", ratelim.RateLimit(places.GetAreaPlaces))
	router.GET("/api/places/place/:contentid", places.GetPlaceDetail)
}

func AddScrapeRoutes(router *httprouter.Router) {
	router.GET("/api/scrape/diningcode", ratelim.RateLimit(scrape.DiningcodeScrape))
	router.GET("/api/scrape/diningcode-legacy", ratelim.RateLimit(scrape.DiningcodeLegacy))
}

func AddPhotoRoutes(router *httprouter.Router) {
	router.POST("/api/photos", ratelim.RateLimit(middleware.Authenticate(photos.UploadPhoto)))
	router.GET("/api/photos/search", photos.SearchByLabel)
	router.GET("/api/photos/photo/:photoid/places", photos.PlacesForPhoto)
}

func AddReviewRoutes(router *httprouter.Router) {
	router.GET("/api/reviews/:contentid", reviews.GetReviews)
	router.POST("/api/reviews/:contentid", middleware.Authenticate(reviews.AddReview))
	router.DELETE("/api/reviews/:contentid/:reviewid", middleware.Authenticate(reviews.DeleteReview))
}

func AddHomeRoutes(router *httprouter.Router) {
	router.GET("/api/home/:section", home.GetHomeContent)
}

func AddSearchRoutes(router *httprouter.Router) {
	router.GET("/api/search/autocomplete", search.Autocomplete)
}

func AddShareRoutes(router *httprouter.Router) {
	router.GET("/api/shares/course/:scheduleid/qr", middleware.Authenticate(share.CourseQR))
	router.GET("/api/shares/course/:scheduleid/pdf", middleware.Authenticate(share.CoursePDF))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/updates", middleware.Authenticate(live.WebSocketHandler(hub)))
}
