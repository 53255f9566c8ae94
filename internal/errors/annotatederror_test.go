package errors

import (
	"github.com/stretchr/testify/require"
	"log/slog"
	"slices"
	"testing"
)

func TestAnnotatedError(t *testing.T) {
	err := New("test error", slog.String("id", "123"))
	require.Equal(t, "test error", err.Error())

	// Assert that wrapping sentinel errors work as expected.
	sentinel := NewSentinel("test error")
	require.NotErrorIs(t, err, NewSentinel("test error"))
	wrapped := err.Wrap(sentinel)
	require.ErrorIs(t, wrapped, sentinel)

	// Ensure log values are coming through.
	group := err.LogValue().Group()
	require.Contains(t, group, slog.String("id", "123"))

	// Assert there's a valid source
	sourceIdx := slices.IndexFunc(group, func(attr slog.Attr) bool {
		return attr.Key == "source"
	})
	source := group[sourceIdx]
	require.Contains(t, source.Value.String(), "annotatederror_test.go")
}

func TestWrap(t *testing.T) {
	sentinel := NewSentinel("pool is empty")
	wrapped := Wrap(sentinel, "start game", slog.String("mode", "sports"))
	require.ErrorIs(t, wrapped, sentinel)
	require.Contains(t, wrapped.Error(), "start game")
	require.Contains(t, wrapped.Error(), "pool is empty")

	var annotated AnnotatedError
	require.True(t, As(wrapped, &annotated))
	group := annotated.LogValue().Group()
	require.Contains(t, group, slog.String("mode", "sports"))
}

func TestSlogError(t *testing.T) {
	err := NewSentinel("boom")
	attr := SlogError(err)
	require.Equal(t, "error", attr.Key)
}
