package middleware

import (
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/utils"
)

// Recovery turns a handler panic into a 500 JSON response and logs the
// stack. http.ErrAbortHandler is re-raised so net/http can drop the
// connection as intended.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer handlePanic(w, r)
			next.ServeHTTP(w, r)
		})
	}
}

func handlePanic(w http.ResponseWriter, r *http.Request) {
	rec := recover()
	switch rec {
	case nil:
		return
	case http.ErrAbortHandler:
		panic(rec)
	}

	log.Error().
		Str(constants.RequestIDContextKey, chimiddleware.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Interface("panic", rec).
		Bytes("stack", debug.Stack()).
		Msg("Panic recovered in request handler")

	utils.Error(w, http.StatusInternalServerError, constants.MsgUnexpectedError, nil)
}
