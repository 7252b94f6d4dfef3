// Package dsp implements the SNES APU's 8-voice digital signal
// processor: BRR sample playback, ADSR/gain envelopes, Gaussian
// interpolation, noise, and the echo/FIR unit.
//
// Grounded on original_source/core/src/apu/dsp.rs, dsp/channel.rs,
// dsp/io.rs and dsp/freq_counter.rs, in the same style cpu and
// apu/spc700 use: const-generic Rust combinators become plain Go
// methods/functions operating on explicit indices.
package dsp

import (
	"github.com/adriweb/gosnes/bit"
	"github.com/adriweb/gosnes/timing"
)

// Memory is the shared 64KB SPC700 address space the DSP reads BRR
// sample data from and writes the echo buffer into. apu/spc700.SPC700
// satisfies this directly via its ReadRAM/WriteRAM raw accessors (bus
// I/O-port decoding and bus timing do not apply to these accesses, just
// as the reference indexes apu.spc700.memory directly).
type Memory interface {
	ReadRAM(addr uint16) uint8
	WriteRAM(addr uint16, value uint8)
}

// Sample is one decoded PCM sample, 16-bit signed.
type Sample = int16

// Output receives finished stereo sample pairs — the root package
// wires a real audio backend in here.
type Output interface {
	PushSample(left, right Sample)
}

const numChannels = 8

// DSP is the 8-voice sound mixer. Every exported field is a DSP
// register the hardware's register map names directly; ReadReg/WriteReg
// are the only intended way a SPC700 program touches them, but the
// fields are exported so a debugger/disassembler can inspect state
// without going through the port encoding.
type DSP struct {
	mem    Memory
	output Output

	Channels [numChannels]Channel

	MainVolume  [2]int8
	Flags       uint8 // bit0-4 noise rate, bit5 disable echo writes, bit6 mute, bit7 soft reset
	Unused      uint8
	PitchModMask uint8
	SampleTableBase uint8

	KeyOn  uint8
	KeyOff uint8
	internalKeyOn  uint8
	internalKeyOff uint8

	endedChannels uint8

	NoiseMask    uint8
	noiseValue   int16
	noiseRate    uint8
	noiseCounter timing.FreqCounter

	EchoVolume        [2]int8
	EchoFeedbackVolume int8
	EchoChannelMask   uint8
	EchoBufferBase    uint8
	EchoBufferDelay   uint8
	EchoFIRCoeffs     [8]int8
	echoBufferOff     uint16
	echoBufferLen     uint16
	echoSamples       [8][2]int16
	echoSamplePos     uint8

	dspTimestamp uint64
}

// New builds a DSP wired to mem (the shared SPC700 RAM) and output
// (the sample sink); output may be nil to discard samples, matching
// the reference's DummyBackend.
func New(mem Memory, output Output) *DSP {
	d := &DSP{
		mem:           mem,
		output:        output,
		noiseValue:    -0x4000,
		echoBufferLen: 4,
	}
	for i := range d.Channels {
		d.Channels[i] = newChannel()
	}
	return d
}

func (d *DSP) noiseRateField() uint8 { return d.Flags & 0x1F }
func (d *DSP) disableEchoWrites() bool { return d.Flags&0x20 != 0 }
func (d *DSP) muteAmplifier() bool     { return d.Flags&0x40 != 0 }

// checkStopped handles the 5-sample key-on startup delay: a freshly
// keyed-on channel plays silence for 5 samples before its envelope and
// BRR decode actually start, matching hardware's documented startup
// behavior.
func (d *DSP) checkStopped(i int) bool {
	c := &d.Channels[i]
	switch c.state {
	case stateStopped:
		return true
	case stateJustStarted:
		if c.justStartedCountdown == 0 {
			if c.useADSR() {
				c.recalcADSREnvelopeValues(true)
			} else {
				c.recalcGainEnvelopeValues(true)
			}
			d.readNextBRRBlock(i)
			return false
		}
		c.justStartedCountdown--
		return true
	default:
		return false
	}
}

// setEnabled implements KON/KOF: keying a channel on loads its BRR
// sample-table entry and resets decode state; keying it off either
// cancels a still-starting channel outright or enters the release
// envelope ramp.
func (d *DSP) setEnabled(i int, enabled bool) {
	c := &d.Channels[i]
	if enabled {
		entryAddr := uint16(d.SampleTableBase)<<8 + uint16(c.SourceNumber)<<2
		c.curAddr = d.readLE16(entryAddr)
		c.loopAddr = d.readLE16(entryAddr + 2)
		c.pitchCounter = 0
		c.lastBRRSamples = [4]int16{}
		c.brrSamples = [20]brrSample{}
		c.brrBlockEnd = brrNormal

		c.state = stateJustStarted
		c.justStartedCountdown = 5
		c.mode = modeAttack
		c.internalEnvelope = 0
		c.lastSampleIndex = 19

		d.endedChannels &^= 1 << uint(i)
		return
	}
	if c.state == stateJustStarted || c.state == stateStopped {
		c.state = stateStopped
		return
	}
	c.enterReleaseState()
}

// readNextBRRBlock decodes the next 9-byte BRR block (1 header + 8
// nibble-pair bytes) into slots 4-19 of the channel's 20-entry sample
// buffer, tagging each shifted sample with the block's filter; the
// predictor filter itself is applied later, in outputSample.
func (d *DSP) readNextBRRBlock(i int) {
	c := &d.Channels[i]
	c.lastSampleIndex -= 16
	if c.brrBlockEnd != brrNormal {
		c.curAddr = c.loopAddr
		d.endedChannels |= 1 << uint(i)
		if c.brrBlockEnd == brrMute {
			c.enterReleaseState()
			c.internalEnvelope = 0
		}
	}
	copy(c.brrSamples[0:4], c.brrSamples[16:20])

	header := d.mem.ReadRAM(c.curAddr)
	c.curAddr++
	shiftAmount := header >> 4
	filter := brrFilter((header >> 2) & 0x3)
	switch header & 0x3 {
	case 0, 2:
		c.brrBlockEnd = brrNormal
	case 1:
		c.brrBlockEnd = brrMute
	default:
		c.brrBlockEnd = brrLoop
	}

	for n := 0; n < 8; n++ {
		b := int16(int8(d.mem.ReadRAM(c.curAddr)))
		c.curAddr++
		hi := b >> 4
		lo := (b << 12) >> 12
		for k, raw := range [2]int16{hi, lo} {
			var decoded int16
			if shiftAmount > 12 {
				decoded = (raw >> 3) << 11
			} else {
				decoded = (raw << shiftAmount) >> 1
			}
			c.brrSamples[4+n*2+k] = brrSample{value: decoded, filter: filter}
		}
	}
}

func (d *DSP) updateStopped(i int) {
	c := &d.Channels[i]
	c.Envelope = uint8(c.internalEnvelope >> 4)
	c.LastSample = 0
}

// outputSample decodes (if needed) and interpolates one channel's
// current sample, then steps its envelope state machine once this
// sample's FreqCounter tick fires.
func (d *DSP) outputSample(i int) int16 {
	c := &d.Channels[i]

	sampleIndex := 4 + uint8(c.pitchCounter>>12)
	for idx := c.lastSampleIndex; idx < sampleIndex; idx++ {
		bs := c.brrSamples[idx]
		sample := int32(bs.value)
		var filtered int32
		switch bs.filter {
		case 0:
			filtered = sample
		case 1:
			old := int32(c.lastBRRSamples[3])
			filtered = sample + old - (old >> 4)
		case 2:
			old := int32(c.lastBRRSamples[3])
			older := int32(c.lastBRRSamples[2])
			filtered = sample + (old << 1) - ((old * 3) >> 5) - older + (older >> 4)
		default:
			old := int32(c.lastBRRSamples[3])
			older := int32(c.lastBRRSamples[2])
			filtered = sample + (old << 1) - ((old * 13) >> 6) - older + ((older * 3) >> 4)
		}
		// Clamp to the full int16 range, then the hardware's documented
		// <<1>>1 truncates to a 15-bit signed quantity (discards the
		// original sign bit and re-extends from bit 14).
		clipped := bit.SaturateS16(filtered) << 1 >> 1
		c.lastBRRSamples[0] = c.lastBRRSamples[1]
		c.lastBRRSamples[1] = c.lastBRRSamples[2]
		c.lastBRRSamples[2] = c.lastBRRSamples[3]
		c.lastBRRSamples[3] = clipped
	}
	c.lastSampleIndex = sampleIndex

	var sample int16
	if c.internalEnvelope != 0 {
		var interpolated int16
		if d.NoiseMask&(1<<uint(i)) == 0 {
			base := int((c.pitchCounter >> 4) & 0xFF)
			// The first three taps wrap on overflow (Rust's
			// wrapping_add); only the last tap saturates.
			interpolated = int16((int32(gaussTables[0][0xFF-base]) * int32(c.lastBRRSamples[0])) >> 10)
			interpolated += int16((int32(gaussTables[1][0xFF-base]) * int32(c.lastBRRSamples[1])) >> 10)
			interpolated += int16((int32(gaussTables[1][base]) * int32(c.lastBRRSamples[2])) >> 10)
			lastTap := int16((int32(gaussTables[0][base]) * int32(c.lastBRRSamples[3])) >> 10)
			interpolated = bit.SaturateAddS16(interpolated, lastTap)
			interpolated >>= 1
		} else {
			interpolated = d.noiseValue
		}
		sample = int16((int32(interpolated) * int32(c.internalEnvelope)) >> 11)
	}

	if c.envelopeCounter.Tick() {
		d.stepEnvelope(c)
	}

	c.LastSample = int8(sample >> 7)
	c.Envelope = uint8(c.internalEnvelope >> 4)
	return sample
}

func (d *DSP) stepEnvelope(c *Channel) {
	if c.state == stateADSR {
		switch c.mode {
		case modeAttack:
			c.internalEnvelope += c.envelopeStep
			if c.internalEnvelope >= 0x7E0 {
				if c.internalEnvelope > 0x7FF {
					c.internalEnvelope = 0x7FF
				}
				c.mode = modeDecay
				c.recalcADSREnvelopeValues(false)
			}
		case modeDecay:
			c.internalEnvelope -= ((c.internalEnvelope - 1) >> 8) + 1
			if c.internalEnvelope <= c.envelopeSustainLevel {
				c.mode = modeSustain
				c.recalcADSREnvelopeValues(false)
			}
		case modeSustain:
			c.internalEnvelope -= uint16(((int32(c.internalEnvelope) - 1) >> 8) + 1)
		}
		return
	}

	switch c.state {
	case stateDirectGain:
		c.internalEnvelope = c.directGainEnvelope
	case stateCustomGain:
		switch c.gainMode() {
		case 0:
			if c.internalEnvelope < 32 {
				c.internalEnvelope = 0
			} else {
				c.internalEnvelope -= 32
			}
		case 1:
			c.internalEnvelope -= uint16(((int32(c.internalEnvelope) - 1) >> 8) + 1)
		case 2:
			c.internalEnvelope += 32
			if c.internalEnvelope > 0x7FF {
				c.internalEnvelope = 0x7FF
			}
		default:
			if c.internalEnvelope < 0x600 {
				c.internalEnvelope += 32
			} else {
				c.internalEnvelope += 8
				if c.internalEnvelope > 0x7FF {
					c.internalEnvelope = 0x7FF
				}
			}
		}
	case stateRelease:
		if c.internalEnvelope < 8 {
			c.internalEnvelope = 0
		} else {
			c.internalEnvelope -= 8
		}
	}

	switch c.mode {
	case modeAttack:
		if c.internalEnvelope >= 0x7E0 {
			c.mode = modeDecay
		}
	case modeDecay:
		if c.internalEnvelope <= c.envelopeSustainLevel {
			c.mode = modeSustain
		}
	}
}

func (d *DSP) readLE16(addr uint16) uint16 {
	lo := d.mem.ReadRAM(addr)
	hi := d.mem.ReadRAM(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

func (d *DSP) writeLE16(addr uint16, value uint16) {
	d.mem.WriteRAM(addr, uint8(value))
	d.mem.WriteRAM(addr+1, uint8(value>>8))
}

// OutputSample runs one full mixer tick: key-on/off processing, noise
// generation, all 8 channels, the echo/FIR unit and the final main-
// volume mix, pushing one stereo frame to Output. Called once per
// output sample — once per two APU timestamp units.
func (d *DSP) OutputSample() {
	d.dspTimestamp++

	if d.dspTimestamp&1 == 0 && d.internalKeyOn|d.internalKeyOff != 0 {
		for i := 0; i < numChannels; i++ {
			if d.internalKeyOff&(1<<uint(i)) != 0 {
				d.setEnabled(i, false)
			} else if d.internalKeyOn&(1<<uint(i)) != 0 {
				d.setEnabled(i, true)
			}
		}
		d.internalKeyOn = 0
		d.internalKeyOff = 0
	}

	if newRate := d.noiseRateField(); newRate != d.noiseRate {
		d.noiseRate = newRate
		d.noiseCounter.SetRate(newRate, false)
	}
	if d.noiseCounter.Tick() {
		prev := uint16(d.noiseValue)
		d.noiseValue = int16((prev&0x7FFE)|((prev^prev>>1)&1)<<15) >> 1
	}

	var prevOutput, leftOutput, rightOutput, echoLeftVoices, echoRightVoices int16
	for i := 0; i < numChannels; i++ {
		stopped := d.checkStopped(i)
		if stopped {
			d.updateStopped(i)
			continue
		}
		output := d.outputSample(i)
		c := &d.Channels[i]
		l := int16((int32(output) * int32(c.Volume[0])) >> 6)
		r := int16((int32(output) * int32(c.Volume[1])) >> 6)
		leftOutput = bit.SaturateAddS16(leftOutput, l)
		rightOutput = bit.SaturateAddS16(rightOutput, r)
		if d.EchoChannelMask&(1<<uint(i)) != 0 {
			echoLeftVoices = bit.SaturateAddS16(echoLeftVoices, l)
			echoRightVoices = bit.SaturateAddS16(echoRightVoices, r)
		}
		step := c.Pitch & 0x3FFF
		if d.PitchModMask&^1&(1<<uint(i)) != 0 {
			scaled := (uint32(step) * uint32((prevOutput>>4)+0x400)) >> 10
			if scaled > 0x3FFF {
				scaled = 0x3FFF
			}
			step = uint16(scaled)
		}
		newCounter := c.pitchCounter + step
		overflowed := newCounter < c.pitchCounter
		c.pitchCounter = newCounter
		prevOutput = output
		if overflowed {
			d.readNextBRRBlock(i)
		}
	}

	echoL, echoR := d.stepEcho(echoLeftVoices, echoRightVoices)

	if d.muteAmplifier() {
		leftOutput = -1
		rightOutput = -1
	} else {
		leftOutput = bit.SaturateAddS16(^int16((int32(leftOutput)*int32(d.MainVolume[0]))>>7),
			int16((int32(echoL)*int32(d.EchoVolume[0]))>>7))
		rightOutput = bit.SaturateAddS16(^int16((int32(rightOutput)*int32(d.MainVolume[1]))>>7),
			int16((int32(echoR)*int32(d.EchoVolume[1]))>>7))
	}

	if d.output != nil {
		d.output.PushSample(leftOutput, rightOutput)
	}
}

// stepEcho advances the ring buffer position, runs the 8-tap FIR over
// the last 8 echo samples, optionally feeds the result back into the
// echo buffer in RAM, and returns this tick's filtered (left, right).
func (d *DSP) stepEcho(echoLeftVoices, echoRightVoices int16) (int16, int16) {
	addr := uint16(d.EchoBufferBase)<<8 + d.echoBufferOff
	d.echoBufferOff += 4
	if d.echoBufferOff >= d.echoBufferLen {
		value := d.EchoBufferDelay & 0xF
		if value == 0 {
			d.echoBufferLen = 4
		} else {
			d.echoBufferLen = uint16(value) << 11
		}
		d.echoBufferOff = 0
	}

	d.echoSamplePos = (d.echoSamplePos + 1) & 7
	pos := d.echoSamplePos

	// The first 7 FIR taps wrap on overflow (Rust's wrapping_add);
	// only the 8th (newest-sample) tap saturates.
	var echoL, echoR int16
	start := int(pos) + 1
	for i := 0; i < 7; i++ {
		es := d.echoSamples[(start+i)&7]
		coeff := int32(d.EchoFIRCoeffs[i])
		echoL += int16((int32(es[0]) * coeff) >> 6)
		echoR += int16((int32(es[1]) * coeff) >> 6)
	}

	newL := int16(d.readLE16(addr)) >> 1
	newR := int16(d.readLE16(addr+2)) >> 1
	d.echoSamples[pos] = [2]int16{newL, newR}
	coeff := int32(d.EchoFIRCoeffs[7])
	echoL = bit.SaturateAddS16(echoL, int16((int32(newL)*coeff)>>6))
	echoR = bit.SaturateAddS16(echoR, int16((int32(newR)*coeff)>>6))

	if !d.disableEchoWrites() {
		feedbackL := bit.SaturateAddS16(echoLeftVoices, int16((int32(echoL)*int32(d.EchoFeedbackVolume))>>7))
		feedbackR := bit.SaturateAddS16(echoRightVoices, int16((int32(echoR)*int32(d.EchoFeedbackVolume))>>7))
		d.writeLE16(addr, uint16(feedbackL)&^1)
		d.writeLE16(addr+2, uint16(feedbackR)&^1)
	}

	return echoL, echoR
}

// EndedChannels reports which voices have reached a BRR block marked
// Mute or Loop since the last write to register $7C (ENDX), which
// clears all bits; keying a voice on clears that voice's bit.
func (d *DSP) EndedChannels() uint8 { return d.endedChannels }
