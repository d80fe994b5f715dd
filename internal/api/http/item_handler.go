package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"lendloop-backend/internal/domain"
	"lendloop-backend/internal/service"
)

type ItemHandler struct {
	itemService service.ItemService
}

func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

type itemRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Images      []string `json:"images"`
	PricePerDay int      `json:"price_per_day"`
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ErrInvalidInput)
		return
	}

	item := &domain.Item{
		OwnerID:     userIDFromContext(r.Context()),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Images:      req.Images,
		PricePerDay: req.PricePerDay,
	}
	if err := h.itemService.AddItem(r.Context(), item); err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, item)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemService.GetItem(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ErrInvalidInput)
		return
	}

	item := &domain.Item{
		ID:          mux.Vars(r)["id"],
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Images:      req.Images,
		PricePerDay: req.PricePerDay,
	}
	if err := h.itemService.UpdateItem(r.Context(), userIDFromContext(r.Context()), item); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.itemService.DeleteItem(r.Context(), userIDFromContext(r.Context()), mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, nil)
}

func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ItemFilter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Location: q.Get("location"),
	}
	if raw := q.Get("max_price"); raw != "" {
		maxPrice, err := strconv.Atoi(raw)
		if err != nil || maxPrice < 0 {
			respondError(w, domain.ErrInvalidInput)
			return
		}
		filter.MaxPrice = maxPrice
	}
	filter.OnlyAvailable = q.Get("available") == "true"

	items, err := h.itemService.SearchItems(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, items)
}

func (h *ItemHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.ListMyItems(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, items)
}
