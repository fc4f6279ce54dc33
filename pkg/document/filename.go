package document

import "strings"

// PDFPrefix is the path under which static PDF artifacts are served
const PDFPrefix = "/documentos/"

// DownloadFilename derives the PDF base name for a document: number with
// every "/" and "." removed, then "-" and the raw date.
func DownloadFilename(number, date string) string {
	r := strings.NewReplacer("/", "", ".", "")
	return r.Replace(number) + "-" + date
}

// PDFPath returns the static resource path for a derived filename
func PDFPath(filename string) string {
	return PDFPrefix + filename + ".pdf"
}

// Filename is DownloadFilename applied to d
func (d Document) Filename() string {
	return DownloadFilename(d.Number, d.Date)
}
