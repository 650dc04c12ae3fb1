package overload

import (
	"fmt"

	"github.com/tsonic/express-postprocess/errors"
)

// Category is the callback type a use() overload accepts. The declaration
// order of the constants is the canonical output order; it has no ties.
type Category int

const (
	Router Category = iota
	RouteHandler
	RouteHandlerReturn
	RouteHandlerSync
	RequestHandler
	RequestHandlerReturn
	RequestHandlerSync
	ErrorRequestHandler
	ErrorRequestHandlerReturn
	ErrorRequestHandlerSync

	numCategories
)

// Shape is the call shape of a callback category.
type Shape int

const (
	ShapeRouter Shape = iota // a Router instance, not a function
	ShapeAsync               // returns a promise (the bare handler name)
	ShapeReturn              // returns a generic value
	ShapeSync                // returns nothing
)

// Categories returns every category in canonical order.
func Categories() []Category {
	out := make([]Category, 0, numCategories)
	for c := Router; c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}

// String returns the TypeScript type name the generator emits for c.
func (c Category) String() string {
	switch c {
	case Router:
		return "Router"
	case RouteHandler:
		return "RouteHandler"
	case RouteHandlerReturn:
		return "RouteHandlerReturn"
	case RouteHandlerSync:
		return "RouteHandlerSync"
	case RequestHandler:
		return "RequestHandler"
	case RequestHandlerReturn:
		return "RequestHandlerReturn"
	case RequestHandlerSync:
		return "RequestHandlerSync"
	case ErrorRequestHandler:
		return "ErrorRequestHandler"
	case ErrorRequestHandlerReturn:
		return "ErrorRequestHandlerReturn"
	case ErrorRequestHandlerSync:
		return "ErrorRequestHandlerSync"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Shape returns the call shape of c. It panics on a value outside the
// enumeration, which only a programming error can produce.
func (c Category) Shape() Shape {
	switch c {
	case Router:
		return ShapeRouter
	case RouteHandler, RequestHandler, ErrorRequestHandler:
		return ShapeAsync
	case RouteHandlerReturn, RequestHandlerReturn, ErrorRequestHandlerReturn:
		return ShapeReturn
	case RouteHandlerSync, RequestHandlerSync, ErrorRequestHandlerSync:
		return ShapeSync
	}
	panic(errors.AssertionFailedf("unhandled callback category %d", int(c)))
}

var categoryByName = func() map[string]Category {
	m := make(map[string]Category, numCategories)
	for _, c := range Categories() {
		m[c.String()] = c
	}
	return m
}()

// ParseCategory maps a generator type name to its category.
func ParseCategory(name string) (Category, bool) {
	c, ok := categoryByName[name]
	return c, ok
}
