package catalogControllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/starsoft-labs/nft-market-api/catalog"
	"github.com/starsoft-labs/nft-market-api/models"
)

type scriptedFetcher struct {
	pages []models.Page
	errs  []error
	calls int
}

func (f *scriptedFetcher) FetchPage(ctx context.Context, page int, query models.ListQuery) (models.Page, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return models.Page{}, f.errs[i]
	}
	if i < len(f.pages) {
		return f.pages[i], nil
	}
	return models.Page{}, errors.New("no scripted page")
}

type listingResponse struct {
	Items []struct {
		ID string `json:"id"`
	} `json:"items"`
	Count        int    `json:"count"`
	Progress     int    `json:"progress"`
	HasViewedAll bool   `json:"hasViewedAll"`
	Error        string `json:"error"`
}

func newCatalogRouter(fetcher catalog.PageFetcher) (*gin.Engine, *catalog.Session) {
	gin.SetMode(gin.TestMode)
	session := catalog.NewSession(fetcher, models.ListQuery{Rows: 8, SortBy: "name", OrderBy: models.OrderAsc})
	r := gin.New()
	r.GET("/catalog", GetCatalog(session))
	r.POST("/catalog/load-more", LoadMore(session))
	return r, session
}

func get(t *testing.T, r *gin.Engine, method, path string) (int, listingResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed listingResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("decode response: %v (%s)", err, w.Body.String())
		}
	}
	return w.Code, parsed
}

func TestGetCatalogLoadsFirstPage(t *testing.T) {
	fetcher := &scriptedFetcher{pages: []models.Page{
		{Items: []models.Item{{ID: "1"}, {ID: "2"}}, Count: 4},
	}}
	r, _ := newCatalogRouter(fetcher)

	status, resp := get(t, r, http.MethodGet, "/catalog")
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d", status)
	}
	if len(resp.Items) != 2 || resp.Count != 4 || resp.Progress != 50 {
		t.Fatalf("unexpected listing: %+v", resp)
	}

	// A second GET reports state without refetching.
	get(t, r, http.MethodGet, "/catalog")
	if fetcher.calls != 1 {
		t.Fatalf("expected a single fetch, got %d", fetcher.calls)
	}
}

func TestLoadMoreAdvancesAndStops(t *testing.T) {
	fetcher := &scriptedFetcher{pages: []models.Page{
		{Items: []models.Item{{ID: "1"}}, Count: 2},
		{Items: []models.Item{{ID: "1"}, {ID: "2"}}, Count: 2},
	}}
	r, _ := newCatalogRouter(fetcher)

	get(t, r, http.MethodGet, "/catalog?rows=1")
	_, resp := get(t, r, http.MethodPost, "/catalog/load-more")
	if len(resp.Items) != 2 || !resp.HasViewedAll || resp.Progress != 100 {
		t.Fatalf("unexpected listing after load-more: %+v", resp)
	}

	// Everything visible: further load-more must not fetch.
	get(t, r, http.MethodPost, "/catalog/load-more")
	if fetcher.calls != 2 {
		t.Fatalf("expected 2 fetches, got %d", fetcher.calls)
	}
}

func TestGetCatalogQueryChangeResetsListing(t *testing.T) {
	fetcher := &scriptedFetcher{pages: []models.Page{
		{Items: []models.Item{{ID: "1"}}, Count: 1},
		{Items: []models.Item{{ID: "9"}}, Count: 1},
	}}
	r, _ := newCatalogRouter(fetcher)

	get(t, r, http.MethodGet, "/catalog")
	_, resp := get(t, r, http.MethodGet, "/catalog?sortBy=price&orderBy=DESC")
	if len(resp.Items) != 1 || resp.Items[0].ID != "9" {
		t.Fatalf("expected fresh listing for new query, got %+v", resp)
	}
}

func TestGetCatalogFailedFirstPageIsBadGateway(t *testing.T) {
	fetcher := &scriptedFetcher{errs: []error{errors.New("upstream down")}}
	r, _ := newCatalogRouter(fetcher)

	status, _ := get(t, r, http.MethodGet, "/catalog")
	if status != http.StatusBadGateway {
		t.Fatalf("expected 502 for failed empty listing, got %d", status)
	}
}

func TestLoadMoreKeepsPartialListingOnError(t *testing.T) {
	fetcher := &scriptedFetcher{
		pages: []models.Page{{Items: []models.Item{{ID: "1"}}, Count: 9}, {}},
		errs:  []error{nil, errors.New("flaky")},
	}
	r, _ := newCatalogRouter(fetcher)

	get(t, r, http.MethodGet, "/catalog")
	status, resp := get(t, r, http.MethodPost, "/catalog/load-more")
	if status != http.StatusOK {
		t.Fatalf("partial listing must stay visible, got status %d", status)
	}
	if len(resp.Items) != 1 || resp.Error == "" {
		t.Fatalf("expected retained items plus error, got %+v", resp)
	}
}

func TestGetItemByID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/catalog/:id", GetItemByID(fetcherFunc(func(ctx context.Context, id string) (*models.Item, error) {
		if id == "7" {
			return &models.Item{ID: "7", Name: "Lantern", Price: 3.25}, nil
		}
		return nil, nil
	})))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/7", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/404", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for absent item, got %d", w.Code)
	}
}

type fetcherFunc func(ctx context.Context, id string) (*models.Item, error)

func (f fetcherFunc) FetchItemByID(ctx context.Context, id string) (*models.Item, error) {
	return f(ctx, id)
}
