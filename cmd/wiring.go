package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"multireasoner/internal/backend"
	"multireasoner/internal/backend/codex"
	"multireasoner/internal/backend/gemini"
	"multireasoner/internal/config"
)

// configuredBackends loads configuration and applies it to the registered
// backend instances, returning them in consensus priority order.
func configuredBackends() (chatgpt, gem backend.Backend, err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve current directory: %w", err)
	}
	if _, err := config.LoadConfig(cwd); err != nil {
		return nil, nil, err
	}

	chatgpt, ok := backend.Get("chatgpt")
	if !ok {
		return nil, nil, errors.New("chatgpt backend not registered")
	}
	if cb, ok := chatgpt.(*codex.Backend); ok {
		if v, ok := config.GetConfig("codex.binary"); ok && v != "" {
			cb.ExecPath = v
		}
		if v, ok := config.GetConfig("codex.workdir"); ok && v != "" {
			cb.WorkDir = v
		}
		if v, ok := config.GetList("extract.answer_markers"); ok {
			cb.Extractor.AnswerMarkers = v
		}
		if v, ok := config.GetList("extract.metadata_prefixes"); ok {
			cb.Extractor.MetadataPrefixes = v
		}
		if v, ok := config.GetConfig("extract.trailer_prefix"); ok && v != "" {
			cb.Extractor.TrailerPrefix = v
		}
	}

	gem, ok = backend.Get("gemini")
	if !ok {
		return nil, nil, errors.New("gemini backend not registered")
	}
	if gb, ok := gem.(*gemini.Backend); ok {
		if v, ok := config.GetConfig("gemini.model"); ok && v != "" {
			gb.Model = v
		}
	}

	return chatgpt, gem, nil
}

// configuredTimeout resolves the per-invocation budget from config.
func configuredTimeout() time.Duration {
	if v, ok := config.GetConfig("defaults.timeout_seconds"); ok {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return backend.DefaultTimeout
}
