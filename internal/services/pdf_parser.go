package services

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

var ErrInvalidPDF = errors.New("invalid PDF document")

// PDFInspector checks uploads before they are stored. It does not extract
// text; that is left to the extraction chain at analysis time.
type PDFInspector interface {
	Inspect(data []byte) (*PDFInfo, error)
}

type PDFInfo struct {
	PageCount int
	Size      int64
}

type pdfInspector struct{}

func NewPDFInspector() PDFInspector {
	return &pdfInspector{}
}

func (p *pdfInspector) Inspect(data []byte) (info *PDFInfo, err error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("%w: missing PDF header", ErrInvalidPDF)
	}

	// the reader panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			info, err = nil, fmt.Errorf("%w: %v", ErrInvalidPDF, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	totalPage := r.NumPage()
	if totalPage == 0 {
		return nil, fmt.Errorf("%w: no pages", ErrInvalidPDF)
	}

	return &PDFInfo{PageCount: totalPage, Size: int64(len(data))}, nil
}
