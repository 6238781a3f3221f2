package common

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/dslipak/pdf"
)

// Source supplies the text lines or the tabular rows of each page of one
// document. Pages are zero-indexed and returned in document order.
type Source interface {
	NumPages() int
	PageText(page int) ([]string, error)
	PageTable(page int, g Geometry) ([]Row, error)
}

// AllPageText returns the lines of every page, one slice per page.
func AllPageText(src Source) ([][]string, error) {
	pages := make([][]string, 0, src.NumPages())
	for no := 0; no < src.NumPages(); no++ {
		lines, err := src.PageText(no)
		if err != nil {
			return nil, err
		}
		pages = append(pages, lines)
	}
	return pages, nil
}

// StaticSource is an in-memory Source. Tables are returned per page as-is;
// the geometry argument is ignored.
type StaticSource struct {
	Pages  [][]string
	Tables [][]Row
}

func (s *StaticSource) NumPages() int {
	return max(len(s.Pages), len(s.Tables))
}

func (s *StaticSource) PageText(page int) ([]string, error) {
	if page < 0 || page >= s.NumPages() {
		return nil, &StructuralError{Page: page, Reason: "page out of range"}
	}
	if page >= len(s.Pages) {
		return nil, nil
	}
	return s.Pages[page], nil
}

func (s *StaticSource) PageTable(page int, _ Geometry) ([]Row, error) {
	if page < 0 || page >= s.NumPages() {
		return nil, &StructuralError{Page: page, Reason: "page out of range"}
	}
	if page >= len(s.Tables) {
		return nil, nil
	}
	return s.Tables[page], nil
}

// PDFSource reads pages from a PDF document held in memory.
type PDFSource struct {
	reader *pdf.Reader
}

// rowTolerance is the vertical distance in points under which two glyphs are
// considered to sit on the same table row.
const rowTolerance = 2.0

func NewPDFSource(reader io.Reader) (*PDFSource, error) {
	// Ensure we have an io.ReaderAt and know the size
	var rAt io.ReaderAt
	var size int64

	switch v := reader.(type) {
	case io.ReaderAt:
		rAt = v
		if seeker, ok := reader.(io.Seeker); ok {
			cur, _ := seeker.Seek(0, io.SeekCurrent)
			end, _ := seeker.Seek(0, io.SeekEnd)
			seeker.Seek(cur, io.SeekStart)
			size = end
		} else {
			return nil, errors.New("reader is io.ReaderAt but not io.Seeker, cannot determine size")
		}
	default:
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(reader); err != nil {
			return nil, err
		}
		b := buf.Bytes()
		rAt = bytes.NewReader(b)
		size = int64(len(b))
	}

	r, err := pdf.NewReader(rAt, size)
	if err != nil {
		return nil, err
	}
	return &PDFSource{reader: r}, nil
}

// OpenPDF loads the file at path into memory and opens it as a Source.
func OpenPDF(path string) (*PDFSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewPDFSource(bytes.NewReader(data))
}

func (s *PDFSource) NumPages() int {
	return s.reader.NumPage()
}

func (s *PDFSource) page(no int) (pdf.Page, error) {
	if no < 0 || no >= s.reader.NumPage() {
		return pdf.Page{}, &StructuralError{Page: no, Reason: "page out of range"}
	}
	return s.reader.Page(no + 1), nil
}

func (s *PDFSource) PageText(no int) ([]string, error) {
	page, err := s.page(no)
	if err != nil {
		return nil, err
	}
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("error getting text from page %d: %w", no+1, err)
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var builder strings.Builder
		builder.Grow(len(row.Content) * 20)

		for i, text := range row.Content {
			builder.WriteString(text.S)
			if i < len(row.Content)-1 {
				builder.WriteByte(' ')
			}
		}

		if builder.Len() > 0 {
			lines = append(lines, builder.String())
		}
	}
	return lines, nil
}

// PageTable clips the positioned glyphs of a page to the geometry's region,
// groups them into rows by baseline and splits each row into
// len(g.Columns)+1 cells at the column boundaries.
func (s *PDFSource) PageTable(no int, g Geometry) (rows []Row, err error) {
	page, err := s.page(no)
	if err != nil {
		return nil, err
	}

	// the pdf package panics on malformed content streams
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, &StructuralError{Page: no, Reason: fmt.Sprint(r)}
		}
	}()

	x0, y0, width, height := mediaBox(page)
	return tableRows(page.Content().Text, pageRegion(x0, y0, width, height, g), columnBounds(x0, width, g.Columns)), nil
}

// region is a page area in points. Y grows upward, as in PDF user space.
type region struct {
	left, right, bottom, top float64
}

// pageRegion converts a Geometry, whose fractions are measured from the
// top-left corner, into points on a page with the given media box.
func pageRegion(x0, y0, width, height float64, g Geometry) region {
	return region{
		left:   x0 + g.Left*width,
		right:  x0 + g.Right*width,
		top:    y0 + height*(1-g.Top),
		bottom: y0 + height*(1-g.Bottom),
	}
}

func (r region) contains(t pdf.Text) bool {
	return t.X >= r.left && t.X <= r.right && t.Y <= r.top && t.Y >= r.bottom
}

// columnBounds converts fractional column boundaries into x positions.
func columnBounds(x0, width float64, columns []float64) []float64 {
	bounds := make([]float64, len(columns))
	for i, c := range columns {
		bounds[i] = x0 + c*width
	}
	return bounds
}

// tableRows keeps the glyphs inside r and returns them as rows, top to
// bottom. Glyphs within rowTolerance of a row's first baseline join it.
func tableRows(texts []pdf.Text, r region, bounds []float64) []Row {
	var clipped []pdf.Text
	for _, t := range texts {
		if r.contains(t) {
			clipped = append(clipped, t)
		}
	}
	sort.SliceStable(clipped, func(i, j int) bool { return clipped[i].Y > clipped[j].Y })

	var rows []Row
	var line []pdf.Text
	for _, t := range clipped {
		if len(line) > 0 && math.Abs(line[0].Y-t.Y) > rowTolerance {
			rows = append(rows, buildRow(line, bounds))
			line = nil
		}
		line = append(line, t)
	}
	if len(line) > 0 {
		rows = append(rows, buildRow(line, bounds))
	}
	return rows
}

// buildRow places each glyph in the cell whose left boundary it sits on or
// after. A space is inserted when a glyph starts more than a quarter of its
// font size after the previous glyph of the same cell ended.
func buildRow(glyphs []pdf.Text, bounds []float64) Row {
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].X < glyphs[j].X })

	cells := make([]strings.Builder, len(bounds)+1)
	lastEnd := make([]float64, len(cells))
	for _, t := range glyphs {
		col := sort.SearchFloat64s(bounds, t.X)
		if col < len(bounds) && bounds[col] == t.X {
			col++
		}
		gap := t.FontSize * 0.25
		if gap <= 0 {
			gap = 1
		}
		if cells[col].Len() > 0 && t.X-lastEnd[col] > gap {
			cells[col].WriteByte(' ')
		}
		cells[col].WriteString(t.S)
		lastEnd[col] = t.X + t.W
	}

	row := make(Row, len(cells))
	for i := range cells {
		row[i] = strings.TrimSpace(cells[i].String())
	}
	return row
}

// mediaBox returns the origin and size of the page, following the page
// tree for an inherited box. Letter size is assumed when none is found.
func mediaBox(page pdf.Page) (x0, y0, width, height float64) {
	for v := page.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			x0, y0 = box.Index(0).Float64(), box.Index(1).Float64()
			return x0, y0, box.Index(2).Float64() - x0, box.Index(3).Float64() - y0
		}
	}
	return 0, 0, 612, 792
}
