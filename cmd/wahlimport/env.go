package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"wahlimport/internal"
	"wahlimport/internal/config"
	"wahlimport/internal/container"
)

func openContainer(ctx context.Context) (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	c, err := container.New(cfg, internal.NewLogger(os.Stderr, cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	if err := c.Open(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func writeJSONLine(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}
