package api

import (
	"context"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_StopsOnCancel(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, e, "127.0.0.1:0", zerolog.Nop()) }()

	require.Eventually(t, func() bool { return e.ListenerAddr() != nil }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServe_ReturnsListenError(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	err := Serve(context.Background(), e, "127.0.0.1:-1", zerolog.Nop())
	assert.Error(t, err)
}
