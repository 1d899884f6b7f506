package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/Stewz00/rpmwiki-auth/internal/handler"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Recoverer turns a panic into a JSON 500 and logs the stack.
func Recoverer(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.WithFields(logrus.Fields{
					"request_id": chimiddleware.GetReqID(r.Context()),
					"panic":      rec,
					"stack":      string(debug.Stack()),
				}).Error("panic recovered")
				handler.WriteMessage(w, http.StatusInternalServerError, handler.MsgInternalError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
