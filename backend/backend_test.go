package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBackend struct {
	chunks [][][2]int16
}

func (r *recordingBackend) HandleSampleChunk(samples [][2]int16) {
	cp := make([][2]int16, len(samples))
	copy(cp, samples)
	r.chunks = append(r.chunks, cp)
}

func TestSampleSinkFlushesOnChunkSize(t *testing.T) {
	rec := &recordingBackend{}
	sink := NewSampleSink(rec, 2)

	sink.PushSample(1, -1)
	assert.Empty(t, rec.chunks, "partial chunk should not flush yet")

	sink.PushSample(2, -2)
	require.Len(t, rec.chunks, 1)
	assert.Equal(t, [][2]int16{{1, -1}, {2, -2}}, rec.chunks[0])
}

func TestSampleSinkFlushDeliversPartialChunk(t *testing.T) {
	rec := &recordingBackend{}
	sink := NewSampleSink(rec, 4)

	sink.PushSample(5, 6)
	sink.Flush()

	require.Len(t, rec.chunks, 1)
	assert.Equal(t, [][2]int16{{5, 6}}, rec.chunks[0])

	sink.Flush() // no pending samples: must not emit an empty chunk
	assert.Len(t, rec.chunks, 1)
}

func TestNewSampleSinkNilBackendUsesDummy(t *testing.T) {
	sink := NewSampleSink(nil, 1)
	assert.NotPanics(t, func() { sink.PushSample(0, 0) })
}
