// Package oto implements backend.Backend on top of ebitengine/oto/v3,
// a live audio device for feeding the DSP's stereo output to the host's
// sound hardware.
//
// Grounded on IntuitionEngine's audio_backend_oto.go: an oto.Context
// plus a single long-lived oto.Player whose Read pulls from a
// lock-protected ring buffer, fed here by HandleSampleChunk instead of
// a polled sound-chip register.
package oto

import (
	"sync"

	"github.com/ebitengine/oto/v3"
)

const ringCapacitySamples = 1 << 15 // 32768 stereo frames, generous headroom over one DSP chunk

// Backend is an oto-backed audio sink: HandleSampleChunk writes stereo
// frames into a ring buffer; oto's player goroutine drains it through
// Read, converting to the interleaved little-endian 16-bit PCM format
// oto expects.
type Backend struct {
	ctx    *oto.Context
	player *oto.Player

	mu      sync.Mutex
	ring    [][2]int16
	readPos int
	count   int // frames currently buffered
}

// New opens an oto context at sampleRate (e.g. 32000, the SNES DSP's
// native output rate) and starts playback immediately; samples queued
// before the first HandleSampleChunk call play as silence.
func New(sampleRate int) (*Backend, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   0, // oto default
	})
	if err != nil {
		return nil, err
	}
	<-ready

	b := &Backend{ctx: ctx, ring: make([][2]int16, ringCapacitySamples)}
	b.player = ctx.NewPlayer(b)
	b.player.Play()
	return b, nil
}

// HandleSampleChunk implements backend.Backend: samples are copied
// into the ring buffer, oldest-unread frames dropped if the host
// audio device is falling behind, rather than blocking the emulation
// thread.
func (b *Backend) HandleSampleChunk(samples [][2]int16) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range samples {
		writePos := (b.readPos + b.count) % len(b.ring)
		b.ring[writePos] = s
		if b.count < len(b.ring) {
			b.count++
		} else {
			b.readPos = (b.readPos + 1) % len(b.ring) // drop oldest frame
		}
	}
}

// Read implements io.Reader for oto.Player: pulls queued stereo frames
// (4 bytes each, little-endian int16 L then R), padding with silence
// when the ring is empty.
func (b *Backend) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for n+4 <= len(p) {
		var frame [2]int16
		if b.count > 0 {
			frame = b.ring[b.readPos]
			b.readPos = (b.readPos + 1) % len(b.ring)
			b.count--
		}
		putInt16LE(p[n:], frame[0])
		putInt16LE(p[n+2:], frame[1])
		n += 4
	}
	return n, nil
}

func putInt16LE(p []byte, v int16) {
	p[0] = byte(v)
	p[1] = byte(v >> 8)
}

// Close stops playback and releases the player.
func (b *Backend) Close() error {
	return b.player.Close()
}
