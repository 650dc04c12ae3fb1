package overload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_CanonicalOrder(t *testing.T) {
	want := []string{
		"Router",
		"RouteHandler",
		"RouteHandlerReturn",
		"RouteHandlerSync",
		"RequestHandler",
		"RequestHandlerReturn",
		"RequestHandlerSync",
		"ErrorRequestHandler",
		"ErrorRequestHandlerReturn",
		"ErrorRequestHandlerSync",
	}

	var got []string
	for _, c := range Categories() {
		got = append(got, c.String())
	}
	assert.Equal(t, want, got)
}

func TestParseCategory_RoundTrip(t *testing.T) {
	for _, c := range Categories() {
		parsed, ok := ParseCategory(c.String())
		require.True(t, ok, c.String())
		assert.Equal(t, c, parsed)
	}

	_, ok := ParseCategory("NextFunction")
	assert.False(t, ok)
	_, ok = ParseCategory("router")
	assert.False(t, ok, "names are case sensitive")
}

func TestShape(t *testing.T) {
	tests := []struct {
		category Category
		want     Shape
	}{
		{Router, ShapeRouter},
		{RouteHandler, ShapeAsync},
		{RequestHandler, ShapeAsync},
		{ErrorRequestHandler, ShapeAsync},
		{RouteHandlerReturn, ShapeReturn},
		{ErrorRequestHandlerReturn, ShapeReturn},
		{RequestHandlerSync, ShapeSync},
		{ErrorRequestHandlerSync, ShapeSync},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.category.Shape(), tt.category.String())
	}
}

func TestShape_EveryCategoryHandled(t *testing.T) {
	for _, c := range Categories() {
		assert.NotPanics(t, func() { c.Shape() }, c.String())
	}
	assert.Panics(t, func() { Category(42).Shape() })
	assert.Equal(t, "Category(42)", Category(42).String())
}
