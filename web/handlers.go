package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"moonhem/models"
	"moonhem/services"
	"moonhem/views"
)

// pageData carries what every template needs: the title and the login
// box state in the top bar.
type pageData struct {
	Title      string
	User       *models.User
	LoginError string
}

type pageLink struct {
	Page   int
	URL    string
	Active bool
}

type homeData struct {
	pageData
	Snap     views.ListingsSnapshot
	Pages    []pageLink
	PrevURL  string
	NextURL  string
	Articles []Article
}

type detailData struct {
	pageData
	Listing   *models.Listing
	TypeLabel string
	MapQuery  string
	Terms     models.LoanTerms
	Quote     models.LoanQuote
	Sent      bool
	SendError string
}

type agentsData struct {
	pageData
	Snap views.AgentsSnapshot
}

type guidesData struct {
	pageData
	Articles []Article
}

type articleData struct {
	pageData
	Article Article
}

func (s *Server) page(c echo.Context, title string) pageData {
	return pageData{
		Title:      title,
		User:       s.session.User(),
		LoginError: c.QueryParam("login_err"),
	}
}

func (s *Server) home(c echo.Context) error {
	filters := filtersFromQuery(c)
	changed := s.listings.SetFilters(filters)
	s.listings.SetPage(intParam(c, "page", 1))

	if changed || !s.listings.Loaded() {
		s.listings.Refresh(c.Request().Context())
	}

	snap := s.listings.Snapshot()
	data := homeData{
		pageData: s.page(c, "Moonhem — Homes for sale"),
		Snap:     snap,
		Articles: Articles(),
	}

	base := filterValues(snap.Filters)
	for p := 1; p <= snap.Result.PageCount; p++ {
		data.Pages = append(data.Pages, pageLink{Page: p, URL: pageURL(base, p), Active: p == snap.Result.Page})
	}
	if snap.Result.Page > 1 {
		data.PrevURL = pageURL(base, snap.Result.Page-1)
	}
	if snap.Result.Page < snap.Result.PageCount {
		data.NextURL = pageURL(base, snap.Result.Page+1)
	}

	return c.Render(http.StatusOK, "home", data)
}

func (s *Server) listingDetail(c echo.Context) error {
	id := c.Param("id")
	listing := s.listings.Find(id)
	if listing == nil {
		// Direct navigation before any search has run.
		s.listings.Refresh(c.Request().Context())
		listing = s.listings.Find(id)
	}
	if listing == nil {
		return c.Render(http.StatusNotFound, "notfound", s.page(c, "Listing not found"))
	}

	terms := models.DefaultLoanTerms(listing.Price)
	if n, ok := models.NumericBound(c.QueryParam("down")); ok {
		terms.DownPct = n
	}
	if n, ok := models.NumericBound(c.QueryParam("rate")); ok {
		terms.RatePct = n
	}
	if n, ok := models.NumericBound(c.QueryParam("years")); ok {
		terms.Years = int(n)
	}

	mapQuery := listing.Address
	if listing.City != "" {
		mapQuery += ", " + listing.City
	}

	data := detailData{
		pageData:  s.page(c, listing.Address+" — Moonhem"),
		Listing:   listing,
		TypeLabel: services.LabelType(listing.PropertyType),
		MapQuery:  mapQuery,
		Terms:     terms,
		Quote:     services.EstimateLoan(terms),
		Sent:      c.QueryParam("sent") == "1",
		SendError: c.QueryParam("err"),
	}
	return c.Render(http.StatusOK, "detail", data)
}

func (s *Server) sendEnquiry(c echo.Context) error {
	id := c.Param("id")
	listing := s.listings.Find(id)

	err := s.session.SendEnquiry(c.Request().Context(), listing, c.FormValue("content"))
	target := "/listings/" + url.PathEscape(id)
	if err != nil {
		s.logger.Warn("[web] enquiry for listing %s rejected: %v", id, err)
		return c.Redirect(http.StatusSeeOther, target+"?err="+url.QueryEscape(err.Error()))
	}
	return c.Redirect(http.StatusSeeOther, target+"?sent=1")
}

func (s *Server) agentDirectory(c echo.Context) error {
	s.agents.SetFilter(c.QueryParam("q"))
	s.agents.Refresh(c.Request().Context())

	data := agentsData{
		pageData: s.page(c, "Moonhem — Agents"),
		Snap:     s.agents.Snapshot(),
	}
	return c.Render(http.StatusOK, "agents", data)
}

func (s *Server) guideOverview(c echo.Context) error {
	data := guidesData{
		pageData: s.page(c, "Moonhem — Buyer guide"),
		Articles: Articles(),
	}
	return c.Render(http.StatusOK, "guides", data)
}

func (s *Server) guideArticle(c echo.Context) error {
	a := FindArticle(c.Param("slug"))
	data := articleData{
		pageData: s.page(c, a.Title+" — Moonhem"),
		Article:  a,
	}
	return c.Render(http.StatusOK, "article", data)
}

func (s *Server) contact(c echo.Context) error {
	return c.Render(http.StatusOK, "contact", s.page(c, "Moonhem — Contact"))
}

func (s *Server) login(c echo.Context) error {
	from := c.FormValue("from")
	if !strings.HasPrefix(from, "/") {
		from = "/"
	}

	err := s.session.Login(c.Request().Context(), c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		s.logger.Warn("[web] login failed: %v", err)
		return c.Redirect(http.StatusSeeOther, withParam(from, "login_err", err.Error()))
	}
	return c.Redirect(http.StatusSeeOther, from)
}

func (s *Server) logout(c echo.Context) error {
	s.session.Logout()
	return c.Redirect(http.StatusSeeOther, "/")
}

// filtersFromQuery rebuilds the search state from the page's query
// parameters; the filter form round-trips through them.
func filtersFromQuery(c echo.Context) models.FilterState {
	f := models.DefaultFilters()
	f.Query = c.QueryParam("q")
	if t := c.QueryParam("type"); t != "" {
		f.Type = t
	}
	f.RoomsMin = c.QueryParam("rooms_min")
	f.RoomsMax = c.QueryParam("rooms_max")
	f.PriceMin = c.QueryParam("price_min")
	f.PriceMax = c.QueryParam("price_max")
	if sort := c.QueryParam("sort"); sort != "" {
		f.Sort = sort
	}
	return f
}

// filterValues encodes the filter state back into query parameters,
// mirroring what the form submits.
func filterValues(f models.FilterState) url.Values {
	v := url.Values{}
	if f.Query != "" {
		v.Set("q", f.Query)
	}
	if f.Type != "" && f.Type != models.TypeAll {
		v.Set("type", f.Type)
	}
	if f.RoomsMin != "" {
		v.Set("rooms_min", f.RoomsMin)
	}
	if f.RoomsMax != "" {
		v.Set("rooms_max", f.RoomsMax)
	}
	if f.PriceMin != "" {
		v.Set("price_min", f.PriceMin)
	}
	if f.PriceMax != "" {
		v.Set("price_max", f.PriceMax)
	}
	if f.Sort != "" && f.Sort != models.SortNewest {
		v.Set("sort", f.Sort)
	}
	return v
}

func pageURL(base url.Values, page int) string {
	v := url.Values{}
	for k, vals := range base {
		v[k] = vals
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if enc := v.Encode(); enc != "" {
		return "/?" + enc
	}
	return "/"
}

func withParam(target, key, value string) string {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + key + "=" + url.QueryEscape(value)
}

func intParam(c echo.Context, name string, fallback int) int {
	if raw := c.QueryParam(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}
