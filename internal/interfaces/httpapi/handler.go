package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/kickoffhq/matchday/internal/platform/logging"
	"github.com/kickoffhq/matchday/internal/usecase"
)

type Handler struct {
	matchdayService    *usecase.MatchdayService
	gameService        *usecase.GameService
	shootoutService    *usecase.ShootoutService
	standingsService   *usecase.StandingsService
	playerStatsService *usecase.PlayerStatsService
	recomputeService   *usecase.RecomputeService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	matchdayService *usecase.MatchdayService,
	gameService *usecase.GameService,
	shootoutService *usecase.ShootoutService,
	standingsService *usecase.StandingsService,
	playerStatsService *usecase.PlayerStatsService,
	recomputeService *usecase.RecomputeService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchdayService:    matchdayService,
		gameService:        gameService,
		shootoutService:    shootoutService,
		standingsService:   standingsService,
		playerStatsService: playerStatsService,
		recomputeService:   recomputeService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeBody fills dst from the request body. An empty body is an error
// unless allowEmpty is set, in which case dst keeps its zero value.
func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
