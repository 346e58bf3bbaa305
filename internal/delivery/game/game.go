package game

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cubego/internal/bootstrap"
	"cubego/internal/domain/board"
	"cubego/internal/domain/game"
	errs "cubego/internal/errors"
	"cubego/internal/httpresponse"
	gameuc "cubego/internal/usecase/game"
	"cubego/internal/usecase/rules"
	"cubego/internal/utils"
)

type GameHandler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
}

type JsonOKResponse struct {
	Text string `json:"text"`
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, gameUC *gameuc.GameUseCase) *GameHandler {
	return &GameHandler{
		cfg:    cfg,
		log:    log,
		gameUC: gameUC,
	}
}

// Routes mounts the game API on r.
func (g *GameHandler) Routes(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Post("/", g.HandleNewGame)
		r.Get("/", g.HandleListGames)
		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", g.HandleGetGame)
			r.Delete("/", g.HandleDeleteGame)
			r.Post("/moves", g.HandleMove)
			r.Post("/moves/check", g.HandleCheckMove)
			r.Post("/pass", g.HandlePass)
			r.Post("/undo", g.HandleUndo)
			r.Post("/reset", g.HandleReset)
			r.Get("/events", g.HandleEvents)
		})
	})
}

// statusFor maps engine and session errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrOutOfBounds),
		errors.Is(err, errs.ErrInvalidColor),
		errors.Is(err, errs.ErrInvalidSize):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotYourTurn),
		errors.Is(err, errs.ErrOccupiedPosition),
		errors.Is(err, errs.ErrKoViolation),
		errors.Is(err, errs.ErrSuicideMove),
		errors.Is(err, errs.ErrNothingToUndo):
		return http.StatusConflict
	case errors.Is(err, errs.ErrSessionClosed):
		return http.StatusGone
	}
	return http.StatusInternalServerError
}

func (g *GameHandler) writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		g.log.Errorf("%s: %v", op, err)
		httpresponse.WriteError(w, status, errs.ErrInternal.Error())
		return
	}
	g.log.Debugf("%s: %v", op, err)
	httpresponse.WriteError(w, status, err.Error())
}

// HandleNewGame godoc
// @Summary Новая игра
// @Description Создаёт пустую доску N×N×N; size=0 берёт размер из конфигурации
// @Tags game
// @Accept json
// @Produce json
// @Param request body game.CreateGameRequest false "Размер доски"
// @Success 200 {object} game.CreateGameResponse
// @Failure 400 {object} httpresponse.ErrorResponse
// @Router /games [post]
func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("HandleNewGame: ", err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	snap, err := g.gameUC.CreateGame(r.Context(), req)
	if err != nil {
		g.writeError(w, "HandleNewGame", err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.CreateGameResponse{
		GameID: snap.GameID,
		Size:   snap.Size,
		Turn:   snap.Turn,
	})
}

func (g *GameHandler) HandleListGames(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, g.gameUC.ListGames())
}

// HandleGetGame godoc
// @Summary Состояние игры
// @Tags game
// @Produce json
// @Param gameID path string true "ID игры"
// @Success 200 {object} game.Snapshot
// @Failure 404 {object} httpresponse.ErrorResponse
// @Router /games/{gameID} [get]
func (g *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	snap, err := g.gameUC.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		g.writeError(w, "HandleGetGame", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, snap)
}

func (g *GameHandler) HandleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := g.gameUC.DeleteGame(chi.URLParam(r, "gameID")); err != nil {
		g.writeError(w, "HandleDeleteGame", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, JsonOKResponse{Text: "game deleted"})
}

// HandleMove godoc
// @Summary Ход
// @Description Ставит камень; при успехе возвращает снятые камни и цвет следующего хода
// @Tags game
// @Accept json
// @Produce json
// @Param gameID path string true "ID игры"
// @Param move body game.MoveRequest true "Координаты и цвет"
// @Success 200 {object} game.MoveResponse
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 409 {object} httpresponse.ErrorResponse
// @Router /games/{gameID}/moves [post]
func (g *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var req game.MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("HandleMove: ", err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	res, err := g.gameUC.MakeMove(r.Context(), chi.URLParam(r, "gameID"), req)
	if err != nil {
		g.writeError(w, "HandleMove", err)
		return
	}

	captured := res.Captured
	if captured == nil {
		captured = []board.Position{}
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.MoveResponse{
		Captured: captured,
		NextTurn: res.NextTurn,
	})
}

// HandleCheckMove answers whether a move would be accepted, for hover feedback.
func (g *GameHandler) HandleCheckMove(w http.ResponseWriter, r *http.Request) {
	var req game.MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("HandleCheckMove: ", err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	reason, err := g.gameUC.CheckMove(r.Context(), chi.URLParam(r, "gameID"), req)
	if err != nil {
		g.writeError(w, "HandleCheckMove", err)
		return
	}

	resp := game.LegalityResponse{Legal: reason == nil}
	if reason != nil {
		resp.Reason = reason.Error()
		var moveErr *rules.MoveError
		if errors.As(reason, &moveErr) {
			resp.Reason = moveErr.Err.Error()
		}
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandlePass(w http.ResponseWriter, r *http.Request) {
	var req game.PassRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("HandlePass: ", err)
		httpresponse.WriteError(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	if err := g.gameUC.Pass(r.Context(), chi.URLParam(r, "gameID"), req.Color); err != nil {
		g.writeError(w, "HandlePass", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, JsonOKResponse{Text: "passed"})
}

func (g *GameHandler) HandleUndo(w http.ResponseWriter, r *http.Request) {
	if err := g.gameUC.Undo(r.Context(), chi.URLParam(r, "gameID")); err != nil {
		g.writeError(w, "HandleUndo", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, JsonOKResponse{Text: "move undone"})
}

func (g *GameHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := g.gameUC.Reset(r.Context(), chi.URLParam(r, "gameID")); err != nil {
		g.writeError(w, "HandleReset", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, JsonOKResponse{Text: "board cleared"})
}
