// Package pdfinfo extracts metadata from compiled PDFs: page count,
// per-page dimensions, header version, encryption state, the document
// information dictionary, and optionally page text.
package pdfinfo

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"latexmcp/internal/texfile"
)

// Options control one extraction.
type Options struct {
	// IncludeText extracts the plain text of every page.
	IncludeText bool
	// Password decrypts protected documents.
	Password string
}

// PageDimensions is one page's media box size in points.
type PageDimensions struct {
	Width  float64
	Height float64
	Unit   string
}

// letterPage is used when a page has no resolvable MediaBox.
var letterPage = PageDimensions{Width: 612, Height: 792, Unit: "pt"}

// Result is the outcome of one extraction. Parse-level problems are
// reported here; only request validation returns an error.
type Result struct {
	Success      bool
	ErrorMessage string
	Path         string
	SizeBytes    int64
	PageCount    int
	Pages        []PageDimensions
	Version      string
	Encrypted    bool

	Title            string
	Author           string
	Subject          string
	Keywords         string
	Producer         string
	Creator          string
	CreationDate     string // ISO 8601
	ModificationDate string // ISO 8601

	Text     []string // per page, when Options.IncludeText
	Duration time.Duration
}

// Extract reads metadata from the PDF at path.
func Extract(path string, opts Options) (Result, error) {
	start := time.Now()

	check := texfile.ValidatePath(path, []string{".pdf"})
	if !check.Valid {
		return Result{}, errors.New(check.ErrorMessage)
	}

	res := Result{Path: path, SizeBytes: check.SizeBytes}
	fail := func(msg string) (Result, error) {
		res.ErrorMessage = msg
		res.Duration = time.Since(start)
		return res, nil
	}

	res.Version = headerVersion(path)

	f, err := os.Open(path)
	if err != nil {
		return fail(fmt.Sprintf("cannot open file: %v", err))
	}
	defer f.Close()

	reader, err := pdf.NewReaderEncrypted(f, check.SizeBytes, passwordFunc(opts.Password))
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			res.Encrypted = true
			if opts.Password == "" {
				return fail("PDF is encrypted and no password was provided")
			}
			return fail("failed to decrypt PDF: invalid password")
		}
		// Distinguish a corrupt file from one our reader merely cannot
		// handle: pdfcpu validates the cross-reference structure.
		conf := model.NewDefaultConfiguration()
		if verr := api.ValidateFile(path, conf); verr != nil {
			return fail(fmt.Sprintf("not a valid PDF file: %v", verr))
		}
		return fail(fmt.Sprintf("failed to read PDF: %v", err))
	}

	trailer := reader.Trailer()
	res.Encrypted = !trailer.Key("Encrypt").IsNull()

	if info := trailer.Key("Info"); !info.IsNull() {
		res.Title = info.Key("Title").Text()
		res.Author = info.Key("Author").Text()
		res.Subject = info.Key("Subject").Text()
		res.Keywords = info.Key("Keywords").Text()
		res.Producer = info.Key("Producer").Text()
		res.Creator = info.Key("Creator").Text()
		res.CreationDate = FormatDate(info.Key("CreationDate").Text())
		res.ModificationDate = FormatDate(info.Key("ModDate").Text())
	}

	res.PageCount = reader.NumPage()
	if res.PageCount <= 0 {
		// Some generators confuse the reader's page-tree walk; pdfcpu
		// counts via the catalog instead.
		if n, cerr := api.PageCountFile(path); cerr == nil {
			res.PageCount = n
		}
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		res.Pages = append(res.Pages, pageDimensions(page))

		if opts.IncludeText {
			text := ""
			if !page.V.IsNull() {
				if t, terr := page.GetPlainText(nil); terr == nil {
					text = t
				}
			}
			res.Text = append(res.Text, text)
		}
	}

	res.Success = true
	res.Duration = time.Since(start)
	return res, nil
}

// passwordFunc yields the user-supplied password once. Returning ""
// tells the reader to stop trying.
func passwordFunc(password string) func() string {
	attempted := false
	return func() string {
		if attempted || password == "" {
			return ""
		}
		attempted = true
		return password
	}
}

// pageDimensions resolves a page's MediaBox, walking up the page tree
// for inherited attributes. Pages without one report US Letter.
func pageDimensions(page pdf.Page) PageDimensions {
	box := inheritedAttr(page.V, "MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return letterPage
	}

	x0 := box.Index(0).Float64()
	y0 := box.Index(1).Float64()
	x1 := box.Index(2).Float64()
	y1 := box.Index(3).Float64()

	width := math.Abs(x1 - x0)
	height := math.Abs(y1 - y0)
	if width == 0 || height == 0 {
		return letterPage
	}
	return PageDimensions{Width: width, Height: height, Unit: "pt"}
}

func inheritedAttr(v pdf.Value, key string) pdf.Value {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		if attr := v.Key(key); !attr.IsNull() {
			return attr
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}

// headerVersion sniffs the %PDF-x.y header. The header is the version
// of record even when an incremental update raises the catalog version.
func headerVersion(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, 16)
	n, err := f.Read(buf)
	if err != nil || n < 8 {
		return ""
	}

	header := string(buf[:n])
	if !strings.HasPrefix(header, "%PDF-") {
		return ""
	}
	version := header[len("%PDF-"):]
	if idx := strings.IndexAny(version, "\r\n \t%"); idx >= 0 {
		version = version[:idx]
	}
	return version
}
