package sink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flitsinc/go-jsonstream/jsonpath"
)

func TestPushAndAwait(t *testing.T) {
	s := New(jsonpath.Path("name"), jsonpath.KindString)
	s.Push("Al")
	s.Push("ice")
	s.Close("Alice")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	final, err := s.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", final)
}

func TestPushAfterCloseIsDropped(t *testing.T) {
	s := New(jsonpath.Root, jsonpath.KindNumber)
	s.Close(float64(30))
	s.Push(float64(99))

	final, err := s.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(30), final)
}

func TestCloseWithError(t *testing.T) {
	s := New(jsonpath.Root, jsonpath.KindObject)
	wantErr := errors.New("boom")
	s.CloseWithError(wantErr)

	_, err := s.Await(context.Background())
	assert.Equal(t, wantErr, err)
	assert.True(t, s.Closed())
}

func TestCloseIsIdempotent(t *testing.T) {
	s := New(jsonpath.Root, jsonpath.KindString)
	s.Close("a")
	s.Close("b")

	final, err := s.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", final)
}

func TestAggregateClosePushesFinalSnapshot(t *testing.T) {
	s := New(jsonpath.Root, jsonpath.KindArray)
	s.Push([]any{"a"})
	s.Close([]any{"a", "b"})

	var got []any
	for v := range s.IterBuffered(context.Background()) {
		got = append(got, v)
	}
	require.Len(t, got, 2)
	assert.Equal(t, []any{"a", "b"}, got[len(got)-1])
}

func TestIterBufferedReplaysFromStart(t *testing.T) {
	s := New(jsonpath.Path("msg"), jsonpath.KindString)
	s.Push("a")
	s.Push("b")
	s.Close("ab")

	var got []string
	for v := range s.IterBuffered(context.Background()) {
		got = append(got, v.(string))
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestIterLiveSkipsAlreadyBuffered(t *testing.T) {
	s := New(jsonpath.Path("msg"), jsonpath.KindString)
	s.Push("a")

	live := s.IterLive(context.Background())

	done := make(chan struct{})
	var got []string
	go func() {
		defer close(done)
		for v := range live {
			got = append(got, v.(string))
		}
	}()

	// Give the iterator goroutine a moment to start waiting before pushing
	// more, so this exercises the live (not buffered) path.
	time.Sleep(10 * time.Millisecond)
	s.Push("b")
	s.Close("ab")
	<-done

	assert.Equal(t, []string{"b"}, got)
}

func TestIterAnnouncementsReplaysForLateSubscriber(t *testing.T) {
	s := New(jsonpath.Root, jsonpath.KindArray)
	children := []*Sink{
		New(jsonpath.AppendIndex(jsonpath.Root, 0), jsonpath.KindString),
		New(jsonpath.AppendIndex(jsonpath.Root, 1), jsonpath.KindString),
		New(jsonpath.AppendIndex(jsonpath.Root, 2), jsonpath.KindString),
	}
	for i, c := range children {
		s.Announce(Announcement{Child: c, Index: i, IsIndex: true})
	}
	s.Close([]any{nil, nil, nil})

	var indices []int
	for a := range s.IterAnnouncements(context.Background()) {
		indices = append(indices, a.Index)
	}
	assert.Equal(t, []int{0, 1, 2}, indices)
}

func TestAwaitRespectsContextCancellation(t *testing.T) {
	s := New(jsonpath.Root, jsonpath.KindString)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
