package client

import "io"

// progressReader reports bytes consumed from the wrapped reader as a
// percentage of the declared total. Reports are monotonic and happen on the
// goroutine draining the reader, which for an upload is the goroutine
// executing the request.
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	lastPct  float64
	callback ProgressFunc
}

func newProgressReader(r io.Reader, total int64, callback ProgressFunc) io.Reader {
	if callback == nil {
		return r
	}
	return &progressReader{r: r, total: total, callback: callback}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 && p.total > 0 {
		p.read += int64(n)
		pct := float64(p.read) / float64(p.total) * 100
		if pct > 100 {
			pct = 100
		}
		if pct > p.lastPct {
			p.lastPct = pct
			p.callback(pct)
		}
	}
	return n, err
}
