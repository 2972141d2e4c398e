package handler

import (
	"net/http"

	"github.com/osse101/vstore/internal/catalog"
	"github.com/osse101/vstore/internal/domain"
)

// CatalogResponse lists the loaded catalog
type CatalogResponse struct {
	Currencies    []*domain.VirtualItem     `json:"currencies"`
	CurrencyPacks []*domain.VirtualItem     `json:"currency_packs"`
	Goods         []*domain.VirtualItem     `json:"goods"`
	Categories    []*domain.VirtualCategory `json:"categories"`
}

// HandleGetCatalog returns every catalog entry
func HandleGetCatalog(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, CatalogResponse{
			Currencies:    cat.Currencies(),
			CurrencyPacks: cat.CurrencyPacks(),
			Goods:         cat.Goods(),
			Categories:    cat.Categories(),
		})
	}
}
