package emu

// Memory is a sparse, byte-addressed, little-endian memory.
// Unwritten locations read as zero.
type Memory struct {
	data map[uint64]byte
}

// NewMemory creates an empty memory.
func NewMemory() *Memory {
	return &Memory{data: make(map[uint64]byte)}
}

// Read8 reads one byte.
func (m *Memory) Read8(addr uint64) uint8 {
	return m.data[addr]
}

// Write8 writes one byte.
func (m *Memory) Write8(addr uint64, value uint8) {
	m.data[addr] = value
}

// Read16 reads a little-endian halfword.
func (m *Memory) Read16(addr uint64) uint16 {
	return uint16(m.Read8(addr)) | uint16(m.Read8(addr+1))<<8
}

// Write16 writes a little-endian halfword.
func (m *Memory) Write16(addr uint64, value uint16) {
	m.Write8(addr, uint8(value))
	m.Write8(addr+1, uint8(value>>8))
}

// Read32 reads a little-endian word.
func (m *Memory) Read32(addr uint64) uint32 {
	return uint32(m.Read16(addr)) | uint32(m.Read16(addr+2))<<16
}

// Write32 writes a little-endian word.
func (m *Memory) Write32(addr uint64, value uint32) {
	m.Write16(addr, uint16(value))
	m.Write16(addr+2, uint16(value>>16))
}

// LoadProgram copies program into memory starting at addr.
func (m *Memory) LoadProgram(addr uint64, program []byte) {
	for i, b := range program {
		m.Write8(addr+uint64(i), b)
	}
}
