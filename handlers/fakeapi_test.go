package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrymomot/storefront/pkg/catalog"
)

const (
	testToken    = "tok-123"
	testPassword = "secret1"
)

// fakeAPI is an in-memory remote product API.
type fakeAPI struct {
	mu       sync.Mutex
	products []catalog.Product
	nextID   int64

	requireAuth   atomic.Bool
	listStatus    atomic.Int32
	mutationFails atomic.Bool

	logins    atomic.Int32
	lists     atomic.Int32
	lastToken atomic.Value
}

func newFakeAPI(t *testing.T, products ...catalog.Product) (*fakeAPI, string) {
	t.Helper()

	api := &fakeAPI{products: products, nextID: 100}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", api.login)
	mux.HandleFunc("GET /api/products", api.list)
	mux.HandleFunc("HEAD /api/products", func(w http.ResponseWriter, _ *http.Request) {})
	mux.HandleFunc("GET /api/products/{id}", api.get)
	mux.HandleFunc("POST /api/products", api.create)
	mux.HandleFunc("PATCH /api/products/{id}", api.update)
	mux.HandleFunc("DELETE /api/products/{id}", api.remove)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return api, srv.URL + "/api"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *fakeAPI) authorized(w http.ResponseWriter, r *http.Request) bool {
	a.lastToken.Store(r.Header.Get("Authorization"))
	if a.requireAuth.Load() && r.Header.Get("Authorization") != "Bearer "+testToken {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	return true
}

func (a *fakeAPI) bearer() string {
	v, _ := a.lastToken.Load().(string)
	return v
}

func (a *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	a.logins.Add(1)
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Password != testPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access_token": testToken})
}

func (a *fakeAPI) list(w http.ResponseWriter, r *http.Request) {
	a.lists.Add(1)
	if !a.authorized(w, r) {
		return
	}
	if status := int(a.listStatus.Load()); status != 0 {
		w.WriteHeader(status)
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	writeJSON(w, http.StatusOK, a.products)
}

func (a *fakeAPI) index(r *http.Request) int {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return -1
	}
	for i, p := range a.products {
		if p.HasID() && *p.ID == id {
			return i
		}
	}
	return -1
}

func (a *fakeAPI) get(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.index(r)
	if i < 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, a.products[i])
}

func (a *fakeAPI) create(w http.ResponseWriter, r *http.Request) {
	if !a.authorized(w, r) {
		return
	}
	if a.mutationFails.Load() {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextID++
	p = p.WithID(a.nextID)
	a.products = append(a.products, p)
	writeJSON(w, http.StatusCreated, p)
}

func (a *fakeAPI) update(w http.ResponseWriter, r *http.Request) {
	if !a.authorized(w, r) {
		return
	}
	if a.mutationFails.Load() {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.index(r)
	if i < 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	p.ID = a.products[i].ID
	a.products[i] = p
	writeJSON(w, http.StatusOK, p)
}

func (a *fakeAPI) remove(w http.ResponseWriter, r *http.Request) {
	if !a.authorized(w, r) {
		return
	}
	if a.mutationFails.Load() {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.index(r)
	if i < 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	a.products = append(a.products[:i], a.products[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
