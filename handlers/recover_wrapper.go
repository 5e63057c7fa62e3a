package handlers

import (
	"log"
	"net/http"
	"runtime"
)

// RecoverWrapper turns a handler panic into a 500 response instead of a
// dropped connection, logging the stack against the failing route.
func RecoverWrapper(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				log.Printf("panic in %s %s: %v\n%s", r.Method, r.URL.Path, rec, stack)
				writeJSON(w, http.StatusInternalServerError, ApiResponse{
					Success: false,
					Message: "Internal server error",
				})
			}
		}()

		handler(w, r)
	}
}
