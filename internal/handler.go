package internal

// Handler declares routes on a router.
//
//	func (h *Catalog) Routes(r storefront.Router) {
//	    r.GET("/productos", h.list)
//	    r.GET("/productos/{id}", h.show)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc handles one request. A non-nil error goes to the error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
type ErrorHandler func(Context, error) error
