package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/denizsemerci/egeli-betty/internal/ports/inbound"
)

// SitemapHandlers serves the search engine surface
type SitemapHandlers struct {
	recipeService inbound.RecipeService
	baseURL       string
	logger        *zap.Logger
}

// NewSitemapHandlers creates the sitemap handlers
func NewSitemapHandlers(recipeService inbound.RecipeService, baseURL string, logger *zap.Logger) *SitemapHandlers {
	return &SitemapHandlers{
		recipeService: recipeService,
		baseURL:       strings.TrimRight(baseURL, "/"),
		logger:        logger,
	}
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

// Sitemap handles GET /sitemap.xml with the home page and every recipe
func (h *SitemapHandlers) Sitemap(w http.ResponseWriter, r *http.Request) {
	slugs, err := h.recipeService.ListSlugs(r.Context())
	if err != nil {
		h.logger.Error("Sitemap generation failed", zap.Error(err))
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}

	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: h.baseURL + "/", ChangeFreq: "daily", Priority: 1.0},
		},
	}
	for _, slug := range slugs {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/tarif/%s", h.baseURL, slug),
			ChangeFreq: "weekly",
			Priority:   0.8,
		})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	fmt.Fprint(w, xml.Header)
	if err := xml.NewEncoder(w).Encode(set); err != nil {
		h.logger.Error("Failed to encode sitemap", zap.Error(err))
	}
}

// Robots handles GET /robots.txt
func (h *SitemapHandlers) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /api/v1/admin/\n\nSitemap: %s/sitemap.xml\n", h.baseURL)
}
