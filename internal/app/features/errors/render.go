// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Status  int
	Heading string
	Message string
}

func render(w http.ResponseWriter, r *http.Request, status int, heading, msg, backURL string) {
	if r.Header.Get("HX-Request") != "" {
		http.Error(w, msg, status)
		return
	}
	vm := viewdata.NewBaseVM(nil, r, heading, "/dashboard")
	if backURL != "" {
		vm.BackURL = backURL
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", pageData{
		BaseVM:  vm,
		Status:  status,
		Heading: heading,
		Message: msg,
	})
}

// RenderUnauthorized shows a "sign in required" page. If backURL is empty
// it defaults to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	render(w, r, http.StatusUnauthorized, "Sign in required", "Please sign in to continue.", backURL)
}

// RenderForbidden shows an access error page. If backURL is empty it
// resolves a safe back URL.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "You don't have permission to view this page."
	}
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/dashboard")
	}
	render(w, r, http.StatusForbidden, "Access denied", msg, backURL)
}

// RenderNotFound shows a 404 page.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "The page you were looking for could not be found."
	}
	render(w, r, http.StatusNotFound, "Not found", msg, backURL)
}

// RenderBadRequest shows a 400 page.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	render(w, r, http.StatusBadRequest, "Bad request", msg, backURL)
}

// RenderServerError shows a 500 page.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "Something went wrong. Please try again."
	}
	render(w, r, http.StatusInternalServerError, "Something went wrong", msg, backURL)
}
