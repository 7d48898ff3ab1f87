package jsonstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flitsinc/go-jsonstream/fragment"
	"github.com/flitsinc/go-jsonstream/jsonpath"
)

func TestHandlePathAndKindAccessors(t *testing.T) {
	ctx := testCtx(t)
	doc := `{"a":{"b":1}}`
	slicer := fragment.NewSlicer(doc, fragment.FixedSize(len(doc)), 0)
	defer slicer.Close()
	c := Open(ctx, slicer, DefaultOptions())

	h, err := c.Get(jsonpath.Path("a"), jsonpath.KindObject)
	require.NoError(t, err)
	assert.Equal(t, jsonpath.Path("a"), h.Path())
	assert.Equal(t, jsonpath.KindObject, h.Kind())

	child, err := h.Get(jsonpath.Path("b"), jsonpath.KindNumber)
	require.NoError(t, err)
	assert.Equal(t, jsonpath.Path("a.b"), child.Path())

	v, err := child.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(1), v)
}

func TestHandleGetComposesArrayIndexPaths(t *testing.T) {
	ctx := testCtx(t)
	doc := `{"items":[{"v":10},{"v":20}]}`
	slicer := fragment.NewSlicer(doc, fragment.FixedSize(len(doc)), 0)
	defer slicer.Close()
	c := Open(ctx, slicer, DefaultOptions())

	items, err := c.Get(jsonpath.Path("items"), jsonpath.KindArray)
	require.NoError(t, err)

	first, err := items.Get(jsonpath.Path("[0]"), jsonpath.KindObject)
	require.NoError(t, err)
	assert.Equal(t, jsonpath.Path("items[0]"), first.Path())

	v, err := first.Get(jsonpath.Path("v"), jsonpath.KindNumber)
	require.NoError(t, err)
	val, err := v.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(10), val)
}

func TestHandleIterLiveOnStringSkipsPastChunks(t *testing.T) {
	ctx := testCtx(t)
	doc := `{"s":"hello"}`
	slicer := fragment.NewSlicer(doc, fragment.FixedSize(len(doc)), 0)
	defer slicer.Close()
	c := Open(ctx, slicer, DefaultOptions())

	h, err := c.Get(jsonpath.Path("s"), jsonpath.KindString)
	require.NoError(t, err)
	v, err := h.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	// All chunks were already emitted before this live iterator was
	// created, so it should see nothing further and end immediately.
	var got []any
	for chunk := range h.IterLive(ctx) {
		got = append(got, chunk)
	}
	assert.Empty(t, got)
}
