package main

import (
	"github.com/rs/zerolog"
)

// progressSink adapts a zerolog.Logger to boolean.ProgressSink
// (SPEC_FULL.md §2/§9 "Progress reporting ... not stdout writes inside
// the core": the pipeline only ever talks to this narrow interface,
// cmd/meshbool is the one place that decides it means a structured log
// line).
type progressSink struct {
	log zerolog.Logger
}

func (s progressSink) Progress(phase, detail string, count int) {
	s.log.Debug().Str("phase", phase).Str("detail", detail).Int("count", count).Msg("progress")
}
