package game

import (
	"net/http"

	"prize_wheel/internal/api/apierr"
	dto "prize_wheel/internal/api/dto/game"
	"prize_wheel/internal/converter"
	"prize_wheel/internal/service"
	"prize_wheel/pkg/req"
	"prize_wheel/pkg/resp"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv    service.GameService
	BaseURL string
}

type Handler struct {
	serv    service.GameService
	baseURL string
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, baseURL: deps.BaseURL}
}

// Config сегменты колеса и угол указателя
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	response := converter.ToWheelConfigResponse(h.serv.Segments(), h.serv.PointerAngle())

	resp.WriteJSONResponse(w, http.StatusOK, response)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.CreateGameRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := h.serv.Create(r.Context(), converter.ToCreateGame(payload))
	if err != nil {
		apierr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToCreateGameResponse(*g, h.baseURL))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.serv.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToGameResponse(*g))
}

// Play первый вызов разыгрывает колеса, повторные возвращают тот же результат
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.PlayRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := h.serv.Play(r.Context(), chi.URLParam(r, "id"), payload.CurrentRotation)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPlayResponse(*outcome))
}
