package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabula/pkg/config"
	"github.com/ajitpratap0/tabula/pkg/errors"
)

func TestSpansBeforeInitAreNoop(t *testing.T) {
	require.NoError(t, Shutdown(context.Background()))

	_, span := StartSpan(context.Background(), "noop")
	span.SetAttribute("rows", 3)
	assert.NotPanics(t, func() { span.Finish(nil) })
}

func TestInitTracingExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()
	require.NoError(t, InitTracing(ctx, TracingConfig{
		ServiceName: "tabula-test",
		SampleRate:  1,
		Writer:      &buf,
	}))

	_, span := StartSpan(ctx, "parser.ParseTabDelimited")
	span.SetAttribute("columns", 6)
	span.SetAttribute("names", []string{"Name", "Age"})
	span.Finish(nil)

	_, failed := StartSpan(ctx, "parser.ParseWithSchema")
	failed.Finish(errors.New(errors.ErrorTypeRowShape, "row 3 contains 2 values"))

	require.NoError(t, Shutdown(ctx))

	out := buf.String()
	assert.Contains(t, out, "parser.ParseTabDelimited")
	assert.Contains(t, out, "parser.ParseWithSchema")
	assert.Contains(t, out, "row_shape_mismatch")
	assert.Contains(t, out, "tabula-test")
}

func TestInitTracingNeverSample(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()
	require.NoError(t, InitTracing(ctx, TracingConfig{ServiceName: "tabula-test", Writer: &buf}))

	_, span := StartSpan(ctx, "dropped")
	span.End()
	require.NoError(t, Shutdown(ctx))

	assert.NotContains(t, buf.String(), "dropped")
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(config.TracingConfig{ServiceName: "svc", SampleRate: 0.5, Pretty: true}, "v1")
	assert.Equal(t, TracingConfig{ServiceName: "svc", ServiceVersion: "v1", SampleRate: 0.5, Pretty: true}, cfg)
}
