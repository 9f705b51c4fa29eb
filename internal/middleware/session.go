package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/log"
)

// Session scopes every request to a storefront session. A missing session id
// starts a new session; the id is always echoed back to the client.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(constants.KEY_HEADER_SESSION_ID)
		logger := zerolog.Ctx(r.Context()).With().Str(constants.KEY_TAG, "middleware Session").Logger()
		if sessionID == "" {
			sessionID = uuid.NewString()
			logger.Debug().Str(constants.KEY_SESSION_ID, sessionID).Msg("started new session")
		}

		logger = logger.With().Str(constants.KEY_SESSION_ID, sessionID).Logger()
		c := log.AttachSessionIDToContext(r.Context(), sessionID)
		c = logger.WithContext(c)
		w.Header().Set(constants.KEY_HEADER_SESSION_ID, sessionID)

		next.ServeHTTP(w, r.WithContext(c))
	})
}
