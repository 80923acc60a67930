package layer

// TCPFlags holds the 12 flag bits that share bytes 12-13 of the TCP
// header with the data offset (RFC 793, with ECN per RFC 3168 and the
// nonce bit per RFC 3540).
//
// Wire layout of the 16-bit word at offset 12, high bit first:
//
//	Offset(4) | Reserved(3) | NS | CWR | ECE | URG | ACK | PSH | RST | SYN | FIN
type TCPFlags struct {
	// Reserved is the 3-bit reserved field. Must be zero on transmit.
	Reserved uint8
	// Nonce is the ECN-nonce concealment protection bit (NS).
	Nonce bool
	// CWR is Congestion Window Reduced.
	CWR bool
	// ECE is ECN-Echo.
	ECE bool
	// URG indicates the urgent pointer field is significant.
	URG bool
	// ACK indicates the acknowledgment field is significant.
	ACK bool
	// PSH is the push function.
	PSH bool
	// RST resets the connection.
	RST bool
	// SYN synchronizes sequence numbers.
	SYN bool
	// FIN indicates no more data from the sender.
	FIN bool
}

// decodeTCPFlags extracts the low 12 bits of the offset/flags word.
func decodeTCPFlags(word uint16) TCPFlags {
	return TCPFlags{
		Reserved: uint8((word >> 9) & 0x07),
		Nonce:    word&0x0100 != 0,
		CWR:      word&0x0080 != 0,
		ECE:      word&0x0040 != 0,
		URG:      word&0x0020 != 0,
		ACK:      word&0x0010 != 0,
		PSH:      word&0x0008 != 0,
		RST:      word&0x0004 != 0,
		SYN:      word&0x0002 != 0,
		FIN:      word&0x0001 != 0,
	}
}

// encode returns the flags as the low 12 bits of the offset/flags word.
func (f TCPFlags) encode() uint16 {
	word := uint16(f.Reserved&0x07) << 9
	if f.Nonce {
		word |= 0x0100
	}
	if f.CWR {
		word |= 0x0080
	}
	if f.ECE {
		word |= 0x0040
	}
	if f.URG {
		word |= 0x0020
	}
	if f.ACK {
		word |= 0x0010
	}
	if f.PSH {
		word |= 0x0008
	}
	if f.RST {
		word |= 0x0004
	}
	if f.SYN {
		word |= 0x0002
	}
	if f.FIN {
		word |= 0x0001
	}
	return word
}

// String returns a compact flag summary, e.g. "SA" for SYN+ACK.
func (f TCPFlags) String() string {
	var s []byte
	if f.SYN {
		s = append(s, 'S')
	}
	if f.PSH {
		s = append(s, 'P')
	}
	if f.ACK {
		s = append(s, 'A')
	}
	if f.FIN {
		s = append(s, 'F')
	}
	if f.RST {
		s = append(s, 'R')
	}
	return string(s)
}
