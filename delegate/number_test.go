package delegate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flitsinc/go-jsonstream/jsonpath"
	"github.com/flitsinc/go-jsonstream/sink"
)

func TestNumberDelegateInteger(t *testing.T) {
	s := sink.New(jsonpath.Path("age"), jsonpath.KindNumber)
	d := newNumberDelegate(s)
	feedAll(d, "30")
	d.Feed(',') // the terminator the parent would reprocess
	require.True(t, d.Done())

	final, err := s.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(30), final)
}

func TestNumberDelegateDoesNotConsumeTerminator(t *testing.T) {
	s := sink.New(jsonpath.Root, jsonpath.KindNumber)
	d := newNumberDelegate(s)
	d.Feed('4')
	d.Feed('2')
	d.Feed('}')
	assert.True(t, d.Done())

	final, err := s.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(42), final)
}

func TestNumberDelegateFloatAndExponent(t *testing.T) {
	s := sink.New(jsonpath.Root, jsonpath.KindNumber)
	d := newNumberDelegate(s)
	feedAll(d, "-1.5e3")
	d.Feed(' ')

	final, err := s.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, -1500.0, final)
}

func TestNumberDelegateInvalidNumber(t *testing.T) {
	s := sink.New(jsonpath.Root, jsonpath.KindNumber)
	d := newNumberDelegate(s)
	feedAll(d, "--")
	d.Feed(',')

	_, err := s.Await(context.Background())
	require.Error(t, err)
}
