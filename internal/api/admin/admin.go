package admin

import (
	"net/http"
	"strconv"

	"prize_wheel/internal/api/apierr"
	dto "prize_wheel/internal/api/dto/admin"
	"prize_wheel/internal/converter"
	"prize_wheel/internal/model"
	"prize_wheel/internal/service"
	"prize_wheel/pkg/resp"
)

const (
	actionStatus = "status"
	actionList   = "list"
	actionStats  = "stats"
)

type HandlerDeps struct {
	Serv service.AdminService
}

type Handler struct {
	serv service.AdminService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Read GET ?action=status|list|stats, без action => status
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch action := r.URL.Query().Get("action"); action {
	case "", actionStatus:
		h.Status(w, r)

	case actionStats:
		stats, err := h.serv.Stats(ctx)
		if err != nil {
			apierr.Write(w, err)
			return
		}
		resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(*stats))

	case actionList:
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				resp.WriteError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			limit = n
		}

		page, err := h.serv.List(ctx, limit)
		if err != nil {
			apierr.Write(w, err)
			return
		}
		resp.WriteJSONResponse(w, http.StatusOK, converter.ToListResponse(*page))

	default:
		resp.WriteError(w, http.StatusBadRequest, "unknown action: "+action)
	}
}

// Status количество игр: всего, сыгранные, несыгранные
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	stats, err := h.serv.Status(r.Context())
	if err != nil {
		apierr.Write(w, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatusResponse(*stats))
}

// Clean DELETE ?action=clean|clean-unplayed
func (h *Handler) Clean(w http.ResponseWriter, r *http.Request) {
	scope := model.CleanScope(r.URL.Query().Get("action"))
	if scope != model.CleanAll && scope != model.CleanUnplayed {
		resp.WriteError(w, http.StatusBadRequest, "unknown action: "+string(scope))
		return
	}
	h.clean(w, r, scope)
}

// CleanAll удаляет все игры без параметров
func (h *Handler) CleanAll(w http.ResponseWriter, r *http.Request) {
	h.clean(w, r, model.CleanAll)
}

func (h *Handler) clean(w http.ResponseWriter, r *http.Request, scope model.CleanScope) {
	deleted, err := h.serv.Clean(r.Context(), scope)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.CleanResponse{Deleted: deleted})
}
