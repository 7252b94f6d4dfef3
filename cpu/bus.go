package cpu

import (
	"log/slog"

	"github.com/adriweb/gosnes/addr"
)

// AccessType parameterises a bus access with three bits of behavior:
// SideEffects (does reading mutate
// latched state), IsDMA (changes the bank 00-3F/80-BF fall-through
// rule) and Log (whether unknown addresses may warn).
type AccessType struct {
	SideEffects bool
	IsDMA       bool
	Log         bool
}

// Concrete access tags.
var (
	AccessCPU   = AccessType{SideEffects: true, IsDMA: false, Log: true}
	AccessDMA   = AccessType{SideEffects: true, IsDMA: true, Log: true}
	AccessDebug = AccessType{SideEffects: false, IsDMA: false, Log: false}
)

// PPUBus is the external collaborator for the bus-B window
// (2100-21FF): the PPU raster pipeline lives outside this core's
// scope, so the bus only needs an interface to forward accesses to
// whatever implements it.
type PPUBus interface {
	ReadBusB(addr uint16) uint8
	WriteBusB(addr uint16, value uint8)
}

// openBusPPU is installed when no PPU is attached: reads return 0,
// matching the "no device responds" open-bus approximation.
type openBusPPU struct{}

func (openBusPPU) ReadBusB(uint16) uint8     { return 0 }
func (openBusPPU) WriteBusB(uint16, uint8)   {}

// Bus composes WRAM, the cart map, the CPU I/O registers and the PPU
// bus-B window behind a single 24-bit decode table.
//
// Grounded on jeebie/memory/mem.go's MMU (regionMap bank-indexed
// dispatch, Read/Write composing multiple backing stores behind one
// address space), generalized from the Game Boy's flat 64KiB space
// into the SNES's bank-keyed decode table.
type Bus struct {
	wram [addr.WRAMSize]byte
	cart CartMap
	io   *IORegs
	ppu  PPUBus
}

// CartMap is the subset of *cart.Map the bus needs; declared locally
// to keep cpu from importing cart's concrete Region/Window types.
type CartMap interface {
	Read(address uint32) (value uint8, ok bool)
	Write(address uint32, value uint8) (ok bool)
}

// NewBus creates a bus with no cart and no PPU attached (both can be
// set later via AttachCart/AttachPPU); WRAM starts zeroed.
func NewBus() *Bus {
	return &Bus{io: newIORegs(), ppu: openBusPPU{}}
}

// AttachCart installs the cart memory map.
func (b *Bus) AttachCart(c CartMap) { b.cart = c }

// IO exposes the CPU-side I/O register file so the root package can
// mirror the APU mailbox bytes and the joypad auto-read result into it
// each time it yields control between CPU and APU.
func (b *Bus) IO() *IORegs { return b.io }

// AttachPPU installs the PPU bus-B collaborator.
func (b *Bus) AttachPPU(p PPUBus) {
	if p == nil {
		b.ppu = openBusPPU{}
		return
	}
	b.ppu = p
}

// Read decodes a 24-bit address by bank and offset, as laid out below.
// Unknown/unmapped reads return 0xFF and never panic.
func (b *Bus) Read(address uint32, at AccessType, cpu *CPU) uint8 {
	bank := uint8(address >> 16)
	off := uint16(address)

	switch {
	case bank == 0x7E || bank == 0x7F:
		return b.wram[(uint32(bank-0x7E)<<16)|uint32(off)]

	case bank <= 0x3F || (bank >= 0x80 && bank <= 0xBF):
		switch {
		case off < 0x2000:
			return b.wram[off]
		case off == addr.APUPort0, off == addr.APUPort1, off == addr.APUPort2, off == addr.APUPort3,
			off == addr.WRAMDataPort, off == addr.WMADDL, off == addr.WMADDM, off == addr.WMADDH:
			if at.IsDMA {
				return b.cartRead(address, at.Log)
			}
			return b.io.read(off, b, at.SideEffects, at.Log)
		case off >= addr.PPUBusBStart && off <= addr.PPUBusBEnd:
			if at.IsDMA {
				return b.cartRead(address, at.Log)
			}
			return b.ppu.ReadBusB(off)
		case off >= addr.IOStart && off <= addr.IOEnd:
			if at.IsDMA {
				return b.cartRead(address, at.Log)
			}
			return b.io.read(off, b, at.SideEffects, at.Log)
		default:
			return b.cartRead(address, at.Log)
		}

	default: // 40-7D, C0-FF
		return b.cartRead(address, at.Log)
	}
}

// Write mirrors Read's decode for writes; unknown addresses discard
// the write silently.
func (b *Bus) Write(address uint32, value uint8, at AccessType, cpu *CPU) {
	bank := uint8(address >> 16)
	off := uint16(address)

	switch {
	case bank == 0x7E || bank == 0x7F:
		b.wram[(uint32(bank-0x7E)<<16)|uint32(off)] = value

	case bank <= 0x3F || (bank >= 0x80 && bank <= 0xBF):
		switch {
		case off < 0x2000:
			b.wram[off] = value
		case off == addr.APUPort0, off == addr.APUPort1, off == addr.APUPort2, off == addr.APUPort3,
			off == addr.WRAMDataPort, off == addr.WMADDL, off == addr.WMADDM, off == addr.WMADDH:
			if at.IsDMA {
				b.cartWrite(address, value, at.Log)
				return
			}
			b.io.write(off, value, b, cpu, at.Log)
		case off >= addr.PPUBusBStart && off <= addr.PPUBusBEnd:
			if at.IsDMA {
				b.cartWrite(address, value, at.Log)
				return
			}
			b.ppu.WriteBusB(off, value)
		case off >= addr.IOStart && off <= addr.IOEnd:
			if at.IsDMA {
				b.cartWrite(address, value, at.Log)
				return
			}
			b.io.write(off, value, b, cpu, at.Log)
		default:
			b.cartWrite(address, value, at.Log)
		}

	default:
		b.cartWrite(address, value, at.Log)
	}
}

func (b *Bus) cartRead(address uint32, log bool) uint8 {
	if b.cart == nil {
		if log {
			slog.Warn("bus read with no cart attached", "address", address)
		}
		return 0xFF
	}
	if v, ok := b.cart.Read(address); ok {
		return v
	}
	if log {
		slog.Warn("bus read at unmapped address", "address", address)
	}
	return 0xFF
}

func (b *Bus) cartWrite(address uint32, value uint8, log bool) {
	if b.cart == nil {
		if log {
			slog.Warn("bus write with no cart attached", "address", address)
		}
		return
	}
	if ok := b.cart.Write(address, value); !ok && log {
		slog.Warn("bus write at unmapped address", "address", address)
	}
}

// WRAMByte reads WRAM directly by linear offset (0..0x1FFFF), used by
// the WRAM data port and DMA transfers that target bus-B's WRAM port.
func (b *Bus) WRAMByte(offset uint32) uint8 { return b.wram[offset&(addr.WRAMSize-1)] }

// SetWRAMByte writes WRAM directly by linear offset.
func (b *Bus) SetWRAMByte(offset uint32, value uint8) { b.wram[offset&(addr.WRAMSize-1)] = value }
