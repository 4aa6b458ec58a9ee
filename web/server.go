package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"moonhem/config"
	"moonhem/services"
	"moonhem/utils"
	"moonhem/views"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Server is the thin presentation layer: server-rendered pages over
// the view controllers. All listing, loan, and messaging logic lives
// below it.
type Server struct {
	echo     *echo.Echo
	cfg      *config.Config
	logger   *utils.Logger
	listings *views.ListingsView
	agents   *views.AgentsView
	session  *views.Session
}

// NewServer wires routes, templates, and static assets.
func NewServer(cfg *config.Config, logger *utils.Logger, listings *views.ListingsView, agents *views.AgentsView, session *views.Session) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Renderer = newRenderer()

	s := &Server{
		echo:     e,
		cfg:      cfg,
		logger:   logger,
		listings: listings,
		agents:   agents,
		session:  session,
	}

	e.StaticFS("/static", echo.MustSubFS(staticFS, "static"))

	e.GET("/", s.home)
	e.GET("/listings/:id", s.listingDetail)
	e.POST("/listings/:id/message", s.sendEnquiry)
	e.GET("/agents", s.agentDirectory)
	e.GET("/guides", s.guideOverview)
	e.GET("/guides/:slug", s.guideArticle)
	e.GET("/contact", s.contact)
	e.POST("/login", s.login)
	e.POST("/logout", s.logout)

	return s
}

// Start serves until the listener fails or the process exits.
func (s *Server) Start() error {
	s.logger.Info("[web] listening on %s", s.cfg.ListenAddr)
	return s.echo.Start(s.cfg.ListenAddr)
}

type renderer struct {
	templates *template.Template
}

func newRenderer() *renderer {
	t := template.New("").Funcs(template.FuncMap{
		"sek":   formatSEK,
		"label": services.LabelType,
	})
	return &renderer{templates: template.Must(t.ParseFS(templateFS, "templates/*.html"))}
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// formatSEK renders a price the Swedish way: thousands separated by
// spaces, rounded to whole kronor.
func formatSEK(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		n = 0
	}
	v := int64(math.Round(n))
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	digits := fmt.Sprintf("%d", v)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}
	return sign + b.String() + " kr"
}
