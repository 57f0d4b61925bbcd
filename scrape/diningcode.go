package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wayfare/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/julienschmidt/httprouter"
)

const diningcodeBase = "https://www.diningcode.com"

// The review site blocks default Go user agents.
const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

var httpClient = resty.New().
	SetTimeout(15 * time.Second).
	SetHeader("User-Agent", browserUA)

type MenuItem struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

func fetchPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	resp, err := httpClient.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode(), pageURL)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
}

// findListing parses the search result page and returns the profile link of
// the first listing whose title matches the requested name.
func findListing(doc *goquery.Document, name string) (string, bool) {
	var href string
	doc.Find("a.PoiBlock").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find("h2").Text())
		if title == "" {
			return true
		}
		if utils.ContainsIgnoreCase(title, name) {
			href, _ = sel.Attr("href")
			return false
		}
		return true
	})
	return href, href != ""
}

// parseMenus extracts menu name/price pairs from a profile page.
func parseMenus(doc *goquery.Document) []MenuItem {
	var menus []MenuItem
	doc.Find("div.menu-info ul.list li").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Find("span.menu").Text())
		price := strings.TrimSpace(sel.Find("span.price").Text())
		if name == "" {
			return
		}
		menus = append(menus, MenuItem{Name: name, Price: price})
	})
	return menus
}

// GET /api/scrape/diningcode?name=...
// Responds 200 {menus}, 400 when name is missing, 404 when no listing
// matches, 500 {error, detail} when the scrape itself fails.
func DiningcodeScrape(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	searchURL := fmt.Sprintf("%s/list.dc?query=%s", diningcodeBase, url.QueryEscape(name))
	listDoc, err := fetchPage(r.Context(), searchURL)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "scrape failed",
			"detail": err.Error(),
		})
		return
	}

	profileHref, ok := findListing(listDoc, name)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "no matching listing found")
		return
	}
	if !strings.HasPrefix(profileHref, "http") {
		profileHref = diningcodeBase + profileHref
	}

	profileDoc, err := fetchPage(r.Context(), profileHref)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "scrape failed",
			"detail": err.Error(),
		})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"menus": parseMenus(profileDoc),
	})
}
