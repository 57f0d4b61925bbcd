package scrape

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const searchPage = `
<html><body>
<a class="PoiBlock" href="/profile.php?rid=aaa"><h2>어쩌다식당</h2></a>
<a class="PoiBlock" href="/profile.php?rid=bbb"><h2>진미평양냉면 본점</h2></a>
<a class="PoiBlock" href="https://www.diningcode.com/profile.php?rid=ccc"><h2></h2></a>
</body></html>`

const profilePage = `
<html><body>
<div class="menu-info">
  <ul class="list">
    <li><span class="menu">물냉면</span><span class="price">14,000원</span></li>
    <li><span class="menu">불고기</span><span class="price"></span></li>
    <li><span class="menu"></span><span class="price">9,000원</span></li>
  </ul>
</div>
</body></html>`

const legacyPage = `
<html><body>
<ul id="menu-list">
  <li>물냉면 : 14,000원</li>
  <li>제육덮밥</li>
  <li> : 5,000원</li>
</ul>
</body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestFindListing(t *testing.T) {
	doc := mustDoc(t, searchPage)

	href, ok := findListing(doc, "진미평양냉면")
	if !ok {
		t.Fatal("expected a match")
	}
	if href != "/profile.php?rid=bbb" {
		t.Fatalf("unexpected href %q", href)
	}

	if _, ok := findListing(doc, "없는가게"); ok {
		t.Fatal("expected no match")
	}
}

func TestFindListingIgnoresCase(t *testing.T) {
	doc := mustDoc(t, `<a class="PoiBlock" href="/p"><h2>Cafe Onion</h2></a>`)

	if _, ok := findListing(doc, "cafe onion"); !ok {
		t.Fatal("match should be case-insensitive")
	}
}

func TestParseMenus(t *testing.T) {
	menus := parseMenus(mustDoc(t, profilePage))

	if len(menus) != 2 {
		t.Fatalf("expected 2 menus, got %d: %+v", len(menus), menus)
	}
	if menus[0].Name != "물냉면" || menus[0].Price != "14,000원" {
		t.Fatalf("unexpected first menu: %+v", menus[0])
	}
	if menus[1].Name != "불고기" || menus[1].Price != "" {
		t.Fatalf("missing price should stay empty: %+v", menus[1])
	}
}

func TestParseLegacyMenus(t *testing.T) {
	menus := parseLegacyMenus(mustDoc(t, legacyPage))

	if len(menus) != 2 {
		t.Fatalf("expected 2 menus, got %d: %+v", len(menus), menus)
	}
	if menus[0].Name != "물냉면" || menus[0].Price != "14,000원" {
		t.Fatalf("unexpected first menu: %+v", menus[0])
	}
	if menus[1].Name != "제육덮밥" || menus[1].Price != "" {
		t.Fatalf("item without price separator: %+v", menus[1])
	}
}

func TestDiningcodeScrapeRequiresName(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/scrape/diningcode", nil)
	rec := httptest.NewRecorder()

	DiningcodeScrape(rec, req, nil)

	if rec.Code != 400 {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
