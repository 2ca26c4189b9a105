package handlers

import (
	"net/http"
	"strconv"
)

// PaginationResponse описывает страницу листинга.
type PaginationResponse struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// paginate считает номер страницы из query-параметра page (1-индексация).
// Невалидный номер дает первую страницу, номер за пределами - последнюю.
func (h *Handlers) paginate(r *http.Request, total int) (PaginationResponse, int, int) {
	pageSize := h.Cfg.PageSize

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	pagination := PaginationResponse{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}

	offset := (page - 1) * pageSize
	return pagination, pageSize, offset
}
