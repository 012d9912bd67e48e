package api

import "io"

// ProgressFunc observes cumulative download progress. total is -1 when the
// response carries no length.
type ProgressFunc func(downloaded, total int64)

// wrapProgress attaches a progress observer to a reader. A nil observer
// returns the reader unchanged.
func wrapProgress(r io.Reader, total int64, report ProgressFunc) io.Reader {
	if report == nil {
		return r
	}
	return &progressReader{r: r, total: total, report: report}
}

type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	report ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.report(p.read, p.total)
	}
	return n, err
}
