package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stackrow/warehouse/internal/logger"
	"github.com/stackrow/warehouse/internal/model"
	"github.com/stackrow/warehouse/internal/service/item"
	"github.com/stackrow/warehouse/internal/service/kanban"
	"github.com/stackrow/warehouse/internal/slotting"
)

type PlacementService interface {
	ListLocations(ctx context.Context) []*model.Location
	Suggest(ctx context.Context, weight float64, isGroundLevel bool) (*model.Location, error)
	Place(ctx context.Context, systemCode, locationCode, operator string) (*model.Item, error)
	Pick(ctx context.Context, systemCode, operator string) error
	ItemsAt(ctx context.Context, locationCode string) []*model.Item
}

type ItemService interface {
	GoodsIn(ctx context.Context, params item.GoodsInParams) (*item.GoodsInResult, error)
	BySystemCode(ctx context.Context, systemCode string) (*model.Item, error)
	List(ctx context.Context, status model.ItemStatus) []*model.Item
	Categories(ctx context.Context) []*model.Category
}

type KanbanService interface {
	Propose(ctx context.Context, params kanban.ChangeParams) (*model.QuantityProposal, error)
	Commit(ctx context.Context, proposalID uuid.UUID) (*model.QuantityChange, error)
	Abort(ctx context.Context, proposalID uuid.UUID) error
}

type StatsService interface {
	Dashboard(ctx context.Context) *model.DashboardStats
	RecentMovements(ctx context.Context, limit int64) []*model.Movement
}

type handler struct {
	placement PlacementService
	items     ItemService
	kanban    KanbanService
	stats     StatsService
}

func NewWarehouseHandler(
	placement PlacementService,
	items ItemService,
	kanban KanbanService,
	stats StatsService,
) *handler {
	return &handler{
		placement: placement,
		items:     items,
		kanban:    kanban,
		stats:     stats,
	}
}

func (h *handler) Register(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/locations", h.listLocations)
		r.Get("/locations/suggest", h.suggestLocation)
		r.Get("/locations/{code}/items", h.itemsAtLocation)

		r.Post("/items", h.goodsIn)
		r.Get("/items", h.listItems)
		r.Get("/items/{systemCode}", h.itemBySystemCode)
		r.Post("/items/{systemCode}/place", h.placeItem)
		r.Post("/items/{systemCode}/pick", h.pickItem)

		r.Get("/categories", h.listCategories)
		r.Post("/categories/{id}/quantity/proposals", h.proposeQuantity)
		r.Post("/quantity-proposals/{id}/commit", h.commitQuantity)
		r.Post("/quantity-proposals/{id}/abort", h.abortQuantity)

		r.Get("/movements/recent", h.recentMovements)
		r.Get("/stats/dashboard", h.dashboard)
	})
}

func (h *handler) listLocations(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, locationsToDTO(h.placement.ListLocations(r.Context())))
}

func (h *handler) suggestLocation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	weight, err := strconv.ParseFloat(q.Get("weight"), 64)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "invalid weight")
		return
	}
	isGround := false
	if g := q.Get("ground"); g != "" {
		isGround, err = strconv.ParseBool(g)
		if err != nil {
			writeError(r.Context(), w, http.StatusBadRequest, "invalid ground flag")
			return
		}
	}

	loc, err := h.placement.Suggest(r.Context(), weight, isGround)
	if err != nil {
		mapError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, locationToDTO(loc))
}

func (h *handler) itemsAtLocation(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	writeJSON(r.Context(), w, http.StatusOK, itemsToDTO(h.placement.ItemsAt(r.Context(), code)))
}

func (h *handler) goodsIn(w http.ResponseWriter, r *http.Request) {
	var req goodsInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.items.GoodsIn(r.Context(), item.GoodsInParams{
		ItemCode:      req.ItemCode,
		CategoryID:    req.CategoryID,
		Weight:        req.Weight,
		Quantity:      req.Quantity,
		Operator:      req.Operator,
		Notes:         req.Notes,
		CoilNumber:    req.CoilNumber,
		CoilLength:    req.CoilLength,
		IsGroundLevel: req.IsGroundLevel,
	})
	if err != nil {
		mapError(r.Context(), w, err)
		return
	}

	out := goodsInResponse{}
	status := http.StatusCreated
	switch {
	case res.Item != nil:
		dto := itemToDTO(res.Item)
		out.Item = &dto
	case res.Proposal != nil:
		dto := proposalToDTO(res.Proposal)
		out.Proposal = &dto
		// The quantity change is pending operator confirmation.
		status = http.StatusAccepted
	case res.Change != nil:
		dto := changeToDTO(res.Change)
		out.Change = &dto
		status = http.StatusOK
	}
	writeJSON(r.Context(), w, status, out)
}

func (h *handler) listItems(w http.ResponseWriter, r *http.Request) {
	status := model.ItemStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(r.Context(), w, http.StatusBadRequest, "invalid status")
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, itemsToDTO(h.items.List(r.Context(), status)))
}

func (h *handler) itemBySystemCode(w http.ResponseWriter, r *http.Request) {
	it, err := h.items.BySystemCode(r.Context(), chi.URLParam(r, "systemCode"))
	if err != nil {
		mapError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, itemToDTO(it))
}

func (h *handler) placeItem(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "invalid request body")
		return
	}

	it, err := h.placement.Place(r.Context(), chi.URLParam(r, "systemCode"), req.LocationCode, req.Operator)
	if err != nil {
		mapError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, itemToDTO(it))
}

func (h *handler) pickItem(w http.ResponseWriter, r *http.Request) {
	var req pickRequest
	if r.Body != nil {
		// Body is optional; decode errors on an empty body are ignored.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.placement.Pick(r.Context(), chi.URLParam(r, "systemCode"), req.Operator); err != nil {
		mapError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) listCategories(w http.ResponseWriter, r *http.Request) {
	cats := h.items.Categories(r.Context())
	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryToDTO(c))
	}
	writeJSON(r.Context(), w, http.StatusOK, out)
}

func (h *handler) proposeQuantity(w http.ResponseWriter, r *http.Request) {
	var req proposeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "invalid request body")
		return
	}

	proposal, err := h.kanban.Propose(r.Context(), kanban.ChangeParams{
		CategoryID: chi.URLParam(r, "id"),
		Delta:      req.Delta,
		Operator:   req.Operator,
		Reference:  req.Reference,
		Notes:      req.Notes,
	})
	if err != nil {
		mapError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, proposalToDTO(proposal))
}

func (h *handler) commitQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "invalid proposal id")
		return
	}

	change, err := h.kanban.Commit(r.Context(), id)
	if err != nil {
		mapError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, changeToDTO(change))
}

func (h *handler) abortQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "invalid proposal id")
		return
	}

	if err := h.kanban.Abort(r.Context(), id); err != nil {
		mapError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) recentMovements(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			writeError(r.Context(), w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	writeJSON(r.Context(), w, http.StatusOK, movementsToDTO(h.stats.RecentMovements(r.Context(), limit)))
}

func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats := h.stats.Dashboard(r.Context())
	writeJSON(r.Context(), w, http.StatusOK, dashboardResponse{
		TotalItems:   stats.TotalItems,
		GoodsInToday: stats.GoodsInToday,
		PicksToday:   stats.PicksToday,
	})
}

func mapError(ctx context.Context, w http.ResponseWriter, err error) {
	var capErr *slotting.CapacityError

	switch {
	case errors.Is(err, model.ErrValidation):
		writeError(ctx, w, http.StatusBadRequest, err.Error()) // 400
	case errors.Is(err, model.ErrLocationNotFound),
		errors.Is(err, model.ErrItemNotFound),
		errors.Is(err, model.ErrCategoryNotFound),
		errors.Is(err, model.ErrProposalNotFound):
		writeError(ctx, w, http.StatusNotFound, err.Error()) // 404
	case errors.Is(err, model.ErrOperationCancelled):
		writeError(ctx, w, http.StatusConflict, err.Error()) // 409
	case errors.As(err, &capErr),
		errors.Is(err, model.ErrNoKanbanRules),
		errors.Is(err, model.ErrQuantityUnderflow),
		errors.Is(err, model.ErrQuantityOverMax),
		errors.Is(err, model.ErrStackFull),
		errors.Is(err, model.ErrWeightExceeded),
		errors.Is(err, model.ErrNoLocationAvailable):
		writeError(ctx, w, http.StatusUnprocessableEntity, err.Error()) // 422
	default:
		writeError(ctx, w, http.StatusInternalServerError, err.Error()) // 500
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, code int, msg string) {
	writeJSON(ctx, w, code, errorResponse{Code: code, Message: msg})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(ctx, "write response", logger.ErrorF(err))
	}
}
