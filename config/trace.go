// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"

	"github.com/ava-labs/avalanchego/trace"

	"github.com/ava-labs/yort/consts"
)

const (
	defaultTraceExporter = "http"
	defaultTraceEndpoint = "localhost:4318"
)

// TraceConfig is the JSON form of the tracing section. Exporter is "grpc" or
// "http" (OTLP).
type TraceConfig struct {
	Enabled    bool              `json:"enabled"`
	Exporter   string            `json:"exporter"`
	Endpoint   string            `json:"endpoint"`
	Insecure   bool              `json:"insecure"`
	Headers    map[string]string `json:"headers"`
	SampleRate float64           `json:"sampleRate"`
}

func NewTraceConfig() *TraceConfig {
	return &TraceConfig{
		Exporter:   defaultTraceExporter,
		Endpoint:   defaultTraceEndpoint,
		SampleRate: 1,
	}
}

// TraceConfig returns the tracer settings consumed by trace.New.
func (c *Config) TraceConfig() (trace.Config, error) {
	tc := c.Trace
	if tc == nil || !tc.Enabled {
		return trace.Config{
			Enabled: false,
		}, nil
	}

	exporterType, err := trace.ExporterTypeFromString(tc.Exporter)
	if err != nil {
		return trace.Config{}, fmt.Errorf("%w: %w", ErrInvalidTraceConfig, err)
	}
	if len(tc.Endpoint) == 0 {
		return trace.Config{}, fmt.Errorf("%w: empty endpoint", ErrInvalidTraceConfig)
	}

	return trace.Config{
		ExporterConfig: trace.ExporterConfig{
			Type:     exporterType,
			Endpoint: tc.Endpoint,
			Insecure: tc.Insecure,
			Headers:  tc.Headers,
		},
		Enabled:         true,
		TraceSampleRate: tc.SampleRate,
		AppName:         consts.Name,
		Version:         consts.Version.String(),
	}, nil
}
