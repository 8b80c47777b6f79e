package listener

import (
	"io"
)

// lineConn is the console's view of a raw telnet or ssh stream. Reads turn
// \r\n, \r and \n into \n, even when a \r\n pair is split across reads, and
// drop control bytes other than tab. Writes turn \n into \r\n unless the
// caller already sent the \r.
type lineConn struct {
	rw io.ReadWriter

	readCR  bool
	wroteCR bool
}

func newLineConn(rw io.ReadWriter) io.ReadWriter {
	return &lineConn{rw: rw}
}

func (c *lineConn) Read(p []byte) (int, error) {
	for {
		n, err := c.rw.Read(p)

		out := 0
		for _, b := range p[:n] {
			switch {
			case b == '\n' && c.readCR:
				// second half of \r\n
			case b == '\r' || b == '\n':
				p[out] = '\n'
				out++
			case b == '\t' || (b >= 0x20 && b != 0x7f):
				p[out] = b
				out++
			}
			c.readCR = b == '\r'
		}

		// A read made only of dropped bytes would look like no progress to
		// the scanner, so read again.
		if out > 0 || err != nil || n == 0 {
			return out, err
		}
	}
}

func (c *lineConn) Write(p []byte) (int, error) {
	converted := make([]byte, 0, len(p)+8)
	for _, b := range p {
		if b == '\n' && !c.wroteCR {
			converted = append(converted, '\r')
		}
		converted = append(converted, b)
		c.wroteCR = b == '\r'
	}

	_, err := c.rw.Write(converted)
	// Report the caller's length, not the converted one
	return len(p), err
}
