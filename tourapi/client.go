package tourapi

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"wayfare/models"

	"github.com/go-resty/resty/v2"
)

// Client wraps the public tourism catalog API. Responses come back with every
// field as a string inside a response/body/items envelope; absent or
// malformed fields are substituted with defaults rather than surfaced as
// errors.
type Client struct {
	http       *resty.Client
	serviceKey string
}

func NewClient(baseURL, serviceKey string) *Client {
	if baseURL == "" {
		baseURL = "https://apis.data.go.kr/B551011/KorService1"
	}
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)

	return &Client{http: http, serviceKey: serviceKey}
}

func NewClientFromEnv() *Client {
	return NewClient(os.Getenv("TOUR_API_URL"), os.Getenv("TOUR_API_KEY"))
}

type envelope struct {
	Response struct {
		Body struct {
			Items struct {
				Item []catalogItem `json:"item"`
			} `json:"items"`
			TotalCount int `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

type catalogItem struct {
	ContentID     string `json:"contentid"`
	ContentTypeID string `json:"contenttypeid"`
	Title         string `json:"title"`
	FirstImage    string `json:"firstimage"`
	Overview      string `json:"overview"`
	Addr1         string `json:"addr1"`
	MapX          string `json:"mapx"`
	MapY          string `json:"mapy"`
}

func (c *Client) baseParams() map[string]string {
	return map[string]string{
		"serviceKey": c.serviceKey,
		"MobileOS":   "ETC",
		"MobileApp":  "wayfare",
		"_type":      "json",
	}
}

// PlaceDetail looks up a single content id. A response without the expected
// item yields a zero-value detail, not an error.
func (c *Client) PlaceDetail(ctx context.Context, contentID int) (models.PlaceDetail, error) {
	var out envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(c.baseParams()).
		SetQueryParams(map[string]string{
			"contentId":    strconv.Itoa(contentID),
			"defaultYN":    "Y",
			"firstImageYN": "Y",
			"addrinfoYN":   "Y",
			"mapinfoYN":    "Y",
			"overviewYN":   "Y",
		}).
		SetResult(&out).
		Get("/detailCommon1")
	if err != nil {
		return models.PlaceDetail{}, err
	}
	if resp.IsError() {
		return models.PlaceDetail{}, fmt.Errorf("tourism API status %d", resp.StatusCode())
	}

	items := out.Response.Body.Items.Item
	if len(items) == 0 {
		return models.PlaceDetail{}, nil
	}
	return toDetail(items[0]), nil
}

// SearchKeyword proxies the catalog's keyword search.
func (c *Client) SearchKeyword(ctx context.Context, keyword string, page, rows int) ([]models.PlaceDetail, error) {
	var out envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(c.baseParams()).
		SetQueryParams(map[string]string{
			"keyword":   keyword,
			"pageNo":    strconv.Itoa(page),
			"numOfRows": strconv.Itoa(rows),
		}).
		SetResult(&out).
		Get("/searchKeyword1")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tourism API status %d", resp.StatusCode())
	}

	details := make([]models.PlaceDetail, 0, len(out.Response.Body.Items.Item))
	for _, item := range out.Response.Body.Items.Item {
		details = append(details, toDetail(item))
	}
	return details, nil
}

// AreaBasedList fetches places for an area and content type (attraction,
// lodging, restaurant).
func (c *Client) AreaBasedList(ctx context.Context, areaCode, contentTypeID, page, rows int) ([]models.PlaceDetail, error) {
	var out envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(c.baseParams()).
		SetQueryParams(map[string]string{
			"areaCode":      strconv.Itoa(areaCode),
			"contentTypeId": strconv.Itoa(contentTypeID),
			"pageNo":        strconv.Itoa(page),
			"numOfRows":     strconv.Itoa(rows),
		}).
		SetResult(&out).
		Get("/areaBasedList1")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tourism API status %d", resp.StatusCode())
	}

	details := make([]models.PlaceDetail, 0, len(out.Response.Body.Items.Item))
	for _, item := range out.Response.Body.Items.Item {
		details = append(details, toDetail(item))
	}
	return details, nil
}

func toDetail(item catalogItem) models.PlaceDetail {
	return models.PlaceDetail{
		ContentID:     atoiOrZero(item.ContentID),
		ContentTypeID: atoiOrZero(item.ContentTypeID),
		Title:         item.Title,
		FirstImage:    item.FirstImage,
		Overview:      item.Overview,
		Addr1:         item.Addr1,
		MapX:          atofOrZero(item.MapX),
		MapY:          atofOrZero(item.MapY),
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func atofOrZero(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
