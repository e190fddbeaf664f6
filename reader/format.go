package reader

import (
	"bytes"
	"io"
)

// headerWindow is how far into a file the %PDF header may start. Readers
// tolerate leading garbage before the header.
const headerWindow = 1024

var pdfMagic = []byte("%PDF-")

// IsPDF reports whether r starts with a PDF header
func IsPDF(r io.ReaderAt) (bool, error) {
	head := make([]byte, headerWindow)
	n, err := r.ReadAt(head, 0)
	if err != nil && err != io.EOF {
		return false, err
	}
	return bytes.Contains(head[:n], pdfMagic), nil
}
