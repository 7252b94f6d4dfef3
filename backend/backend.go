// Package backend implements the host audio backend boundary: the DSP
// pushes one finished stereo sample at a time; this package batches
// those into host-chosen chunks and flushes them to a Backend once the
// buffer fills.
//
// Grounded on go-jeebie's jeebie/backend.Backend (same "platform
// receives finished output, never blocks the emulation thread" shape),
// narrowed to audio alone: this core has no PPU/raster surface, so the
// windowing/input half of that interface has no counterpart here.
package backend

import "github.com/adriweb/gosnes/apu/dsp"

// Backend receives finished stereo sample chunks. Implementations must
// not block the emulation thread for any significant time.
type Backend interface {
	HandleSampleChunk(samples [][2]int16)
}

// DummyBackend drops every sample; a safe default when no real audio
// device is available.
type DummyBackend struct{}

// HandleSampleChunk discards samples.
func (DummyBackend) HandleSampleChunk(samples [][2]int16) {}

// SampleSink adapts a chunked Backend to the DSP's per-sample
// dsp.Output interface.
type SampleSink struct {
	backend Backend
	chunk   [][2]int16
	size    int
}

// NewSampleSink returns a sink that flushes to backend every size
// samples. A nil backend is replaced with DummyBackend.
func NewSampleSink(backend Backend, size int) *SampleSink {
	if backend == nil {
		backend = DummyBackend{}
	}
	if size < 1 {
		size = 1
	}
	return &SampleSink{backend: backend, size: size, chunk: make([][2]int16, 0, size)}
}

// PushSample implements dsp.Output.
func (s *SampleSink) PushSample(left, right dsp.Sample) {
	s.chunk = append(s.chunk, [2]int16{left, right})
	if len(s.chunk) >= s.size {
		s.backend.HandleSampleChunk(s.chunk)
		s.chunk = s.chunk[:0]
	}
}

// Flush pushes any partial chunk accumulated so far, for callers that
// need samples delivered before the chunk fills (e.g. on shutdown).
func (s *SampleSink) Flush() {
	if len(s.chunk) == 0 {
		return
	}
	s.backend.HandleSampleChunk(s.chunk)
	s.chunk = s.chunk[:0]
}

var _ dsp.Output = (*SampleSink)(nil)
