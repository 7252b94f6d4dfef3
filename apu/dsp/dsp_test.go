package dsp

import "testing"

type stubMemory struct {
	ram [0x10000]uint8
}

func (m *stubMemory) ReadRAM(addr uint16) uint8         { return m.ram[addr] }
func (m *stubMemory) WriteRAM(addr uint16, value uint8) { m.ram[addr] = value }

type stubOutput struct {
	samples [][2]int16
}

func (o *stubOutput) PushSample(left, right Sample) {
	o.samples = append(o.samples, [2]int16{left, right})
}

// TestKeyOnMutedLoopEndsChannel covers the documented startup+loop-end
// path: keying on a voice whose sample table entry points at an
// all-zero BRR block marked Mute should play silence, then end the
// channel (ENDX bit set) and drop it into the release envelope state
// once the block's loop-end is reached.
func TestKeyOnMutedLoopEndsChannel(t *testing.T) {
	mem := &stubMemory{}
	out := &stubOutput{}
	d := New(mem, out)

	const sampleTableBase = 0x02
	const brrBlockAddr = 0x0300
	entryAddr := uint16(sampleTableBase)<<8

	mem.ram[entryAddr] = uint8(brrBlockAddr & 0xFF)
	mem.ram[entryAddr+1] = uint8(brrBlockAddr >> 8)
	mem.ram[entryAddr+2] = uint8(brrBlockAddr & 0xFF)
	mem.ram[entryAddr+3] = uint8(brrBlockAddr >> 8)

	// shift=0, filter=0, end flags 0b01 (Mute); 8 all-zero data bytes
	// already zeroed by stubMemory's zero value.
	mem.ram[brrBlockAddr] = 0x01

	d.WriteReg(0x5D, sampleTableBase) // SampleTableBase
	d.WriteReg(0x04, 0x00)            // voice 0 source number
	d.WriteReg(0x02, 0xFF)            // voice 0 pitch low
	d.WriteReg(0x03, 0x3F)            // voice 0 pitch high (masked to 0x3FFF)
	d.WriteReg(0x4C, 0x01)            // KON bit 0

	ended := false
	for i := 0; i < 64 && !ended; i++ {
		d.OutputSample()
		if d.EndedChannels()&1 != 0 {
			ended = true
		}
	}

	if !ended {
		t.Fatal("channel 0 never reached ENDX after looping a muted block")
	}
	if d.Channels[0].state != stateRelease {
		t.Fatalf("channel state = %v, want stateRelease", d.Channels[0].state)
	}
	if d.Channels[0].internalEnvelope != 0 {
		t.Fatalf("internalEnvelope = %#x, want 0", d.Channels[0].internalEnvelope)
	}
	// The final mix is bitwise-inverted, so a silent mix (no voice
	// output, zero echo) reaches the output as -1 on both sides.
	for _, s := range out.samples {
		if s[0] != -1 || s[1] != -1 {
			t.Fatalf("expected silence (-1, -1) throughout, got sample %v", s)
		}
	}
}

// TestWriteRegClearsEndedChannels covers the ENDX register's
// write-to-clear hardware behavior.
func TestWriteRegClearsEndedChannels(t *testing.T) {
	d := New(&stubMemory{}, nil)
	d.endedChannels = 0xFF
	d.WriteReg(0x7C, 0x00)
	if d.EndedChannels() != 0 {
		t.Fatalf("EndedChannels = %#x, want 0 after writing ENDX", d.EndedChannels())
	}
}

// TestReadWriteRegRoundTrip exercises the per-voice register decode
// for a representative field of each kind.
func TestReadWriteRegRoundTrip(t *testing.T) {
	d := New(&stubMemory{}, nil)

	d.WriteReg(0x10, 0x55) // voice 1 volume left
	if got := d.ReadReg(0x10); got != 0x55 {
		t.Fatalf("volume left = %#02x, want 0x55", got)
	}

	d.WriteReg(0x22, 0x12) // voice 2 pitch low
	d.WriteReg(0x23, 0x34) // voice 2 pitch high
	if d.Channels[2].Pitch != 0x3412 {
		t.Fatalf("pitch = %#04x, want 0x3412", d.Channels[2].Pitch)
	}

	d.WriteReg(0x0C, 0x20) // main volume left
	if got := d.ReadReg(0x0C); got != 0x20 {
		t.Fatalf("main volume left = %#02x, want 0x20", got)
	}

	d.WriteReg(0x0D, 0x7F) // echo feedback volume
	if got := d.ReadReg(0x0D); uint8(got) != 0x7F {
		t.Fatalf("echo feedback volume = %#02x, want 0x7F", got)
	}

	d.WriteReg(0x7F, 0x03) // last FIR coefficient
	if int8(d.ReadReg(0x7F)) != 3 {
		t.Fatalf("FIR[7] = %d, want 3", int8(d.ReadReg(0x7F)))
	}
}
