package logging

import "bytes"

// LineSink receives one complete log line per call.
type LineSink interface {
	WriteLineBytes(b []byte)
}

// LineWriter adapts a line sink to io.Writer. zerolog emits one event per
// Write, so each call is split on newlines and forwarded without them.
type LineWriter struct {
	Sink LineSink
}

func (w LineWriter) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		line := p
		rest := []byte(nil)
		if i := bytes.IndexByte(p, '\n'); i >= 0 {
			line, rest = p[:i], p[i+1:]
		}
		w.Sink.WriteLineBytes(bytes.TrimSuffix(line, []byte{'\r'}))
		p = rest
	}
	return n, nil
}
