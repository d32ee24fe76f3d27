package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/derex0721/cryptorex/internal/models"
)

type fundingPageResponse struct {
	TsISO    string                `json:"tsISO"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"pageSize"`
	Total    int                   `json:"total"`
	Query    string                `json:"q,omitempty"`
	Items    []models.FundingRound `json:"items"`
}

// Funding serves a paged, searchable view over the funding slice of the
// snapshot. Search matches project name, category, and investors.
func (a *API) Funding(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parseIntParam(q.Get("page"), 1, 1, 100)
	pageSize := parseIntParam(q.Get("pageSize"), 20, 1, 60)
	searchText := strings.TrimSpace(q.Get("q"))

	snap, ok := a.agg.Snapshot()
	if !ok {
		ctx, cancel := context.WithTimeout(r.Context(), a.cfg.RequestTimeout)
		defer cancel()
		snap = a.agg.Refresh(ctx)
	}

	items := applyFundingSearch(snap.Funding, searchText)
	total := len(items)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	paged := []models.FundingRound{}
	if start < end {
		paged = items[start:end]
	}

	writeJSON(w, http.StatusOK, fundingPageResponse{
		TsISO:    nowISO(),
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Query:    searchText,
		Items:    paged,
	})
}

func applyFundingSearch(items []models.FundingRound, query string) []models.FundingRound {
	trimmed := strings.ToLower(strings.TrimSpace(query))
	if trimmed == "" {
		return items
	}
	out := make([]models.FundingRound, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), trimmed) ||
			strings.Contains(strings.ToLower(it.Category), trimmed) {
			out = append(out, it)
			continue
		}
		for _, inv := range append(append([]string{}, it.LeadInvestors...), it.Investors...) {
			if strings.Contains(strings.ToLower(inv), trimmed) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}
