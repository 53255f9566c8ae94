package main

import (
	"context"
	"github.com/kritsada/personaguess/internal/e2etest"
	"github.com/kritsada/personaguess/internal/errors"
	"github.com/kritsada/personaguess/internal/logging"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// TestGame plays one quick resigned game against the deployed server to
// verify the whole stack end to end.
func TestGame(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()
	var err error

	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return errors.Wrap(err, "wait for healthy")
	}

	var modes struct {
		GameModes []struct {
			ID    string `json:"id"`
			Count int    `json:"count"`
		} `json:"game_modes"`
	}
	var status int
	if status, err = client.GetJSON(ctx, "/game_modes", &modes); err != nil {
		return errors.Wrap(err, "list game modes")
	}
	if status != http.StatusOK || len(modes.GameModes) == 0 {
		return errors.New("unexpected game modes response", slog.Int("status", status))
	}

	var started struct {
		SessionID string `json:"session_id"`
		PoolSize  int    `json:"pool_size"`
	}
	if status, err = client.PostJSON(ctx, "/start_game", map[string]string{}, &started); err != nil {
		return errors.Wrap(err, "start game")
	}
	if status != http.StatusOK || started.SessionID == "" || started.PoolSize == 0 {
		return errors.New("unexpected start game response", slog.Int("status", status))
	}

	var resigned struct {
		Secret struct {
			ID string `json:"id"`
		} `json:"secret"`
	}
	if status, err = client.PostJSON(ctx, "/resign_game",
		map[string]string{"session_id": started.SessionID}, &resigned); err != nil {
		return errors.Wrap(err, "resign game")
	}
	if status != http.StatusOK || resigned.Secret.ID == "" {
		return errors.New("unexpected resign response", slog.Int("status", status))
	}

	var full struct {
		Ranking []struct {
			ID string `json:"id"`
		} `json:"ranking"`
	}
	if status, err = client.PostJSON(ctx, "/get_ranking",
		map[string]string{"session_id": started.SessionID}, &full); err != nil {
		return errors.Wrap(err, "get ranking")
	}
	if status != http.StatusOK || len(full.Ranking) != started.PoolSize || full.Ranking[0].ID != resigned.Secret.ID {
		return errors.New("unexpected ranking response", slog.Int("status", status))
	}

	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestGame(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing game flow", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
