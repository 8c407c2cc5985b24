package terminal

// keyDecoder turns raw terminal bytes into commands.
// Escape sequences split across reads are held until the rest arrives.
type keyDecoder struct {
	pending []byte
}

// feed decodes data appended to any held partial sequence
func (d *keyDecoder) feed(data []byte, emit func(Command)) {
	buf := data
	if len(d.pending) > 0 {
		buf = append(d.pending, data...)
		d.pending = nil
	}

	for len(buf) > 0 {
		n, cmd := decodeOne(buf)
		if n == 0 {
			// Incomplete escape sequence, wait for more input
			d.pending = append([]byte(nil), buf...)
			return
		}
		if cmd != CmdNone {
			emit(cmd)
		}
		buf = buf[n:]
	}
}

// timeout resolves a held sequence once no more input followed it.
// A lone ESC is the Escape key.
func (d *keyDecoder) timeout(emit func(Command)) {
	if len(d.pending) == 1 && d.pending[0] == 0x1b {
		emit(CmdQuit)
	}
	d.pending = nil
}

// decodeOne returns the length of the first key in data and its command.
// A zero length means data starts with an incomplete sequence.
func decodeOne(data []byte) (int, Command) {
	b := data[0]
	switch {
	case b == 0x1b:
		return decodeEscape(data)
	case b == 0x03: // Ctrl+C
		return 1, CmdQuit
	case b < 0x80:
		return 1, commandForRune(rune(b))
	}
	// Skip the rest of a UTF-8 sequence as one unmapped key
	n := 1
	for n < len(data) && data[n]&0xc0 == 0x80 {
		n++
	}
	return n, CmdNone
}

func decodeEscape(data []byte) (int, Command) {
	if len(data) < 2 {
		return 0, CmdNone
	}
	switch data[1] {
	case '[':
		return decodeCSI(data)
	case 'O':
		// SS3, sent for arrows in application cursor mode
		if len(data) < 3 {
			return 0, CmdNone
		}
		return 3, arrowCommand(data[2])
	case 0x1b:
		// ESC ESC: first one was a standalone Escape
		return 1, CmdQuit
	}
	// Alt+key, not mapped
	return 2, CmdNone
}

// decodeCSI handles ESC [ params final, including modified arrows like ESC [1;5A
func decodeCSI(data []byte) (int, Command) {
	const maxScan = 16
	for end := 2; end < len(data) && end < maxScan; end++ {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			return end + 1, arrowCommand(b)
		}
		if b < 0x20 || b > 0x7e {
			// Malformed, drop ESC [ and resync
			return 2, CmdNone
		}
	}
	if len(data) >= maxScan {
		return 2, CmdNone
	}
	return 0, CmdNone
}

func arrowCommand(final byte) Command {
	switch final {
	case 'A':
		return CmdUp
	case 'B':
		return CmdDown
	case 'C':
		return CmdRight
	case 'D':
		return CmdLeft
	}
	return CmdNone
}
