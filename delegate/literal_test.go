package delegate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flitsinc/go-jsonstream/jsonpath"
	"github.com/flitsinc/go-jsonstream/sink"
)

func TestLiteralDelegateTrue(t *testing.T) {
	s := sink.New(jsonpath.Root, jsonpath.KindBoolean)
	d := newLiteralDelegate(s, jsonpath.KindBoolean)
	feedAll(d, "true")
	assert.True(t, d.Done())

	final, err := s.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, true, final)
}

func TestLiteralDelegateFalse(t *testing.T) {
	s := sink.New(jsonpath.Root, jsonpath.KindBoolean)
	d := newLiteralDelegate(s, jsonpath.KindBoolean)
	feedAll(d, "false")
	assert.True(t, d.Done())

	final, err := s.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, false, final)
}

func TestLiteralDelegateNull(t *testing.T) {
	s := sink.New(jsonpath.Root, jsonpath.KindNull)
	d := newLiteralDelegate(s, jsonpath.KindNull)
	feedAll(d, "null")
	assert.True(t, d.Done())

	final, err := s.Await(context.Background())
	require.NoError(t, err)
	assert.Nil(t, final)
}

func TestLiteralDelegateBoolDisambiguatesEarly(t *testing.T) {
	s := sink.New(jsonpath.Root, jsonpath.KindBoolean)
	d := newLiteralDelegate(s, jsonpath.KindBoolean)
	// "t" only matches "true"; the delegate should finish as soon as the
	// last distinguishing character of the single remaining candidate has
	// been seen, without needing an explicit terminator.
	feedAll(d, "true")
	require.True(t, d.Done())
	final, err := s.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, true, final)
}

func TestLiteralDelegateInvalid(t *testing.T) {
	s := sink.New(jsonpath.Root, jsonpath.KindBoolean)
	d := newLiteralDelegate(s, jsonpath.KindBoolean)
	d.Feed('t')
	d.Feed('x')
	require.True(t, d.Done())

	_, err := s.Await(context.Background())
	require.Error(t, err)
}
