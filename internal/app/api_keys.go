package app

import "net/http"

// APIKeysRequired reports whether plan mutations need a key. With no keys
// configured the API is open.
func (app *Application) APIKeysRequired() bool {
	return len(app.Config.ApiKeys) > 0
}

// RequestHasInvalidAPIKey checks the key query parameter, then the X-API-Key header.
func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	if !app.APIKeysRequired() {
		return false
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		key = r.Header.Get("X-API-Key")
	}
	return app.IsInvalidAPIKey(key)
}

func (app *Application) IsInvalidAPIKey(key string) bool {
	if key == "" {
		return true
	}

	for _, validKey := range app.Config.ApiKeys {
		if key == validKey {
			return false
		}
	}

	return true
}
