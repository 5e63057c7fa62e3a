package routes

import (
	"net/http"

	"vinworld/handlers"
)

// CORS middleware. The session cookie is a credential, so the allowed
// origin must be echoed back; browsers reject credentialed requests
// against a wildcard.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin) // Restrict to your domain in production
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func handle(pattern string, h http.HandlerFunc) {
	http.Handle(pattern, withCORS(http.HandlerFunc(handlers.RecoverWrapper(h))))
}

func SetupRoutes(
	authHandler *handlers.AuthHandler,
	docketHandler *handlers.DocketHandler,
	draftHandler *handlers.DraftHandler,
) {
	// Auth routes
	handle("/login", authHandler.Login)
	handle("/logout", authHandler.Logout)
	handle("/session", authHandler.Session)
	handle("/remembered-username", authHandler.RememberedUsername)

	// Docket routes
	handle("/dockets", docketHandler.List)
	handle("/dockets/", func(w http.ResponseWriter, r *http.Request) {
		docketNo := r.URL.Path[len("/dockets/"):]
		if docketNo != "" {
			docketHandler.Get(w, r, docketNo)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	handle("/consignors", docketHandler.Consignors)

	// Draft routes
	handle("/draft", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			draftHandler.Open(w, r)
		case http.MethodGet:
			draftHandler.Show(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	handle("/draft/field", post(draftHandler.SetField))
	handle("/draft/consignor", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			draftHandler.SelectConsignor(w, r)
		case http.MethodDelete:
			draftHandler.ClearConsignor(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	handle("/draft/shipments", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			draftHandler.AddShipment(w, r)
		case http.MethodDelete:
			draftHandler.RemoveShipment(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	handle("/draft/shipments/box-type", post(draftHandler.SelectBoxType))
	handle("/draft/shipments/dimension", post(draftHandler.SetDimension))
	handle("/draft/ocr", post(draftHandler.OCR))
	handle("/draft/reset", post(draftHandler.Reset))
	handle("/draft/submit", post(draftHandler.SubmitCreate))
	handle("/draft/update", post(draftHandler.SubmitUpdate))
}

func post(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}
