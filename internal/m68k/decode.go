package m68k

// Step fetches, decodes, and executes a single instruction, then raises a
// trace exception if the trace bit is set and the instruction itself
// didn't already take an exception. It returns the cycle count consumed,
// mostly useful for tests asserting forward progress. The supported subset
// is deliberately narrow: every scenario the debugger core needs to
// exercise (breakpoints, single-stepping, illegal instructions, subroutine
// calls) can be written with it, but it is not a general-purpose 68000
// interpreter.
func (c *CPU) Step() int {
	if !c.Running() {
		return 0
	}

	opcode := c.Fetch16()
	cycles, tookException := c.execute(opcode)

	if !tookException && c.Running() && c.SR&SRTrace1 != 0 {
		c.ProcessException(VecTrace)
	}
	return cycles
}

// execute runs one already-fetched opcode and reports whether it already
// raised an exception of its own (in which case Step must not also raise a
// trace exception on top of it).
func (c *CPU) execute(opcode uint16) (cycles int, tookException bool) {
	switch {
	case opcode == OpcodeNOP:
		return 4, false

	case opcode == OpcodeRTS:
		c.PC = c.Pop32()
		return 16, false

	case opcode == OpcodeRTE:
		c.Pop16() // format/vector word, on top of the frame pushExceptionFrame built
		sr := c.Pop16()
		pc := c.Pop32()
		c.swapStacksForMode(sr&SRSupervisor != 0)
		c.SR = sr
		c.PC = pc
		return 20, false

	case opcode == OpcodeILLEGAL:
		c.PC -= WordSize
		c.ProcessException(VecIllegalInstr)
		return 34, true

	case opcode&OpcodeTrapMask == OpcodeTrapBase:
		n := uint8(opcode & 0xF)
		c.ProcessException(VecTrapBase + n)
		return 34, true

	case opcode&0xF100 == 0x7000: // MOVEQ #imm,Dn
		reg := (opcode >> 9) & 7
		data := int32(int8(opcode & 0xFF))
		c.D[reg] = uint32(data)
		c.setCCR(SRCCRMask&^SRCarry&^SRExtend, ccrFromResult(uint32(data), 4, false, false))
		return 4, false

	case opcode&0xC000 == 0 && opcode&0x01F8 == 0: // MOVE size Dn,Dn (register direct)
		size := (opcode >> 12) & 3
		destReg := (opcode >> 9) & 7
		srcReg := opcode & 7
		switch size {
		case 1: // byte
			v := uint8(c.D[srcReg])
			c.D[destReg] = c.D[destReg]&0xFFFFFF00 | uint32(v)
			c.setCCR(SRCCRMask&^SRCarry&^SRExtend, ccrFromResult(uint32(v), 1, false, false))
		case 3: // word
			v := uint16(c.D[srcReg])
			c.D[destReg] = c.D[destReg]&0xFFFF0000 | uint32(v)
			c.setCCR(SRCCRMask&^SRCarry&^SRExtend, ccrFromResult(uint32(v), 2, false, false))
		case 2: // long
			v := c.D[srcReg]
			c.D[destReg] = v
			c.setCCR(SRCCRMask&^SRCarry&^SRExtend, ccrFromResult(v, 4, false, false))
		default:
			c.PC -= WordSize
			c.ProcessException(VecIllegalInstr)
			return 34, true
		}
		return 4, false

	case opcode&0xF1F8 == 0xD040: // ADD.W Dn,Dn
		destReg := (opcode >> 9) & 7
		srcReg := opcode & 7
		result := uint32(uint16(c.D[destReg])) + uint32(uint16(c.D[srcReg]))
		c.D[destReg] = c.D[destReg]&0xFFFF0000 | (result & 0xFFFF)
		c.setCCR(SRCCRMask, ccrFromResult(result, 2, result > 0xFFFF, false))
		return 4, false

	case opcode&0xF1F8 == 0x9040: // SUB.W Dn,Dn
		destReg := (opcode >> 9) & 7
		srcReg := opcode & 7
		a, b := uint16(c.D[destReg]), uint16(c.D[srcReg])
		result := uint32(a) - uint32(b)
		c.D[destReg] = c.D[destReg]&0xFFFF0000 | (result & 0xFFFF)
		c.setCCR(SRCCRMask, ccrFromResult(result, 2, b > a, false))
		return 4, false

	case opcode&0xF1F8 == 0xB040: // CMP.W Dn,Dn
		destReg := (opcode >> 9) & 7
		srcReg := opcode & 7
		a, b := uint16(c.D[destReg]), uint16(c.D[srcReg])
		result := uint32(a) - uint32(b)
		c.setCCR(SRCCRMask&^SRExtend, ccrFromResult(result, 2, b > a, false))
		return 4, false

	case opcode&0xF000 == 0x6000: // Bcc/BRA/BSR, 8-bit displacement
		cond := uint8((opcode >> 8) & 0xF)
		disp := int32(int8(opcode & 0xFF))
		target := uint32(int32(c.PC) + disp)
		switch cond {
		case 0: // BRA
			c.PC = target
		case 1: // BSR
			c.Push32(c.PC)
			c.PC = target
		default:
			if c.condTrue(cond) {
				c.PC = target
			}
		}
		return 10, false

	case opcode == OpcodeJMPAbsLong:
		c.PC = c.Fetch32()
		return 12, false

	case opcode == OpcodeJSRAbsLong:
		addr := c.Fetch32()
		c.Push32(c.PC)
		c.PC = addr
		return 18, false

	case opcode&0xF1FF == 0x41F9: // LEA abs.L,An
		reg := (opcode >> 9) & 7
		addr := c.Fetch32()
		if reg == 7 {
			c.SP = addr
		} else {
			c.A[reg] = addr
		}
		return 12, false

	default:
		c.PC -= WordSize
		c.ProcessException(VecIllegalInstr)
		return 34, true
	}
}

func (c *CPU) condTrue(cond uint8) bool {
	n := c.SR&SRNegative != 0
	z := c.SR&SRZero != 0
	v := c.SR&SROverflow != 0
	cFlag := c.SR&SRCarry != 0
	switch cond {
	case 2: // BHI
		return !cFlag && !z
	case 3: // BLS
		return cFlag || z
	case 4: // BCC
		return !cFlag
	case 5: // BCS
		return cFlag
	case 6: // BNE
		return !z
	case 7: // BEQ
		return z
	case 8: // BVC
		return !v
	case 9: // BVS
		return v
	case 10: // BPL
		return !n
	case 11: // BMI
		return n
	case 12: // BGE
		return n == v
	case 13: // BLT
		return n != v
	case 14: // BGT
		return !z && n == v
	case 15: // BLE
		return z || n != v
	}
	return false
}
