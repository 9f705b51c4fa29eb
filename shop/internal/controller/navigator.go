package controller

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/constants"
)

// redirectNavigator answers the current request with a redirect to the
// navigation target.
type redirectNavigator struct {
	w http.ResponseWriter
	r *http.Request
}

func (n redirectNavigator) Navigate(c context.Context, target string) error {
	zerolog.Ctx(c).Debug().Str(constants.KEY_NAVIGATION_TARGET, target).Msg("redirecting")
	http.Redirect(n.w, n.r, target, http.StatusSeeOther)
	return nil
}
