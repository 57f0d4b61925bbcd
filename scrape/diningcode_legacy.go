package scrape

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"wayfare/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/julienschmidt/httprouter"
)

// The pre-redesign markup kept menus in a flat list under #menu-list; some
// long-tail listings still serve it.

func parseLegacyMenus(doc *goquery.Document) []MenuItem {
	var menus []MenuItem
	doc.Find("#menu-list li").Each(func(_ int, sel *goquery.Selection) {
		parts := strings.SplitN(strings.TrimSpace(sel.Text()), ":", 2)
		if len(parts) == 0 || parts[0] == "" {
			return
		}
		item := MenuItem{Name: strings.TrimSpace(parts[0])}
		if len(parts) == 2 {
			item.Price = strings.TrimSpace(parts[1])
		}
		menus = append(menus, item)
	})
	return menus
}

// GET /api/scrape/diningcode-legacy?name=...
// Same contract as DiningcodeScrape against the old markup.
func DiningcodeLegacy(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	searchURL := fmt.Sprintf("%s/search.dc?query=%s", diningcodeBase, url.QueryEscape(name))
	doc, err := fetchPage(r.Context(), searchURL)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "scrape failed",
			"detail": err.Error(),
		})
		return
	}

	menus := parseLegacyMenus(doc)
	if len(menus) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "no matching listing found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"menus": menus})
}
