package fragment

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, s *Slicer) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var got string
	for {
		frag, err := s.Next(ctx)
		if err == io.EOF {
			return got
		}
		require.NoError(t, err)
		got += frag
	}
}

func TestSlicerFixedSizeSynchronous(t *testing.T) {
	s := NewSlicer(`{"a":1}`, FixedSize(3), 0)
	defer s.Close()
	assert.Equal(t, `{"a":1}`, drain(t, s))
}

func TestSlicerOneCharacterSynchronous(t *testing.T) {
	doc := `{"a":1}`
	s := NewSlicer(doc, OneCharacter(), 0)
	defer s.Close()

	ctx := context.Background()
	for i := 0; i < len(doc); i++ {
		frag, err := s.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, string(doc[i]), frag)
	}
	_, err := s.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSlicerEmptyDocument(t *testing.T) {
	s := NewSlicer("", FixedSize(4), 0)
	defer s.Close()
	_, err := s.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestSlicerPacedDelivery(t *testing.T) {
	s := NewSlicer(`ab`, OneCharacter(), time.Millisecond)
	defer s.Close()
	assert.Equal(t, `ab`, drain(t, s))
}

func TestSlicerCloseStopsPacingGoroutine(t *testing.T) {
	s := NewSlicer(`abcdef`, OneCharacter(), time.Hour)
	// Never drained; Close must still return promptly instead of blocking
	// on the pacing goroutine's ticker.
	done := make(chan struct{})
	go func() {
		s.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return; pacing goroutine leaked")
	}
}

func TestSlicerContextCancellationDuringPacedWait(t *testing.T) {
	s := NewSlicer(`abc`, OneCharacter(), time.Hour)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
