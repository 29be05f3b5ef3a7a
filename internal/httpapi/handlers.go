package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/DoyleJ11/heartz-client/internal/engine"
	"github.com/DoyleJ11/heartz-client/internal/room"
	"github.com/DoyleJ11/heartz-client/internal/selection"
)

// Room is the part of the room the control surface drives.
type Room interface {
	View(ctx context.Context) (room.View, error)
	Toggle(ctx context.Context, position int) error
	Submit(ctx context.Context) error
	Join(ctx context.Context) error
	JoinBot(ctx context.Context) error
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func GetView(rm Room) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeView(w, r, rm)
	}
}

func ToggleCard(rm Room) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pos, err := strconv.Atoi(chi.URLParam(r, "position"))
		if err != nil || pos < 0 {
			writeError(w, http.StatusBadRequest, errors.New("position must be a non-negative integer"))
			return
		}
		act(w, r, rm, func(ctx context.Context) error { return rm.Toggle(ctx, pos) })
	}
}

func Submit(rm Room) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		act(w, r, rm, rm.Submit)
	}
}

func Join(rm Room) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		act(w, r, rm, rm.Join)
	}
}

func JoinBot(rm Room) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		act(w, r, rm, rm.JoinBot)
	}
}

// act runs one room action and answers with the view it produced.
func act(w http.ResponseWriter, r *http.Request, rm Room, f func(context.Context) error) {
	if err := f(r.Context()); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeView(w, r, rm)
}

func writeView(w http.ResponseWriter, r *http.Request, rm Room) {
	v, err := rm.View(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrCardNotInHand):
		return http.StatusNotFound
	case errors.Is(err, selection.ErrSelectionFull),
		errors.Is(err, selection.ErrSelectionUnavailable),
		errors.Is(err, engine.ErrSubmitDisabled),
		errors.Is(err, engine.ErrJoinUnavailable):
		return http.StatusConflict
	case errors.Is(err, room.ErrStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: err.Error()})
}
