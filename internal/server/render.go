package server

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/nainya/gazette/pkg/document"
	"github.com/nainya/gazette/pkg/listing"
)

//go:embed templates/page.html
var templateFS embed.FS

// EmptyMessage is shown when no document matches the filters
const EmptyMessage = "Nenhum documento encontrado com os critérios selecionados"

type pageRenderer struct {
	tmpl *template.Template
}

func newPageRenderer() (*pageRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, err
	}
	return &pageRenderer{tmpl: tmpl}, nil
}

type statCard struct {
	Label string
	Count int
}

type tabLink struct {
	Label  string
	Href   string
	Active bool
}

type pageLink struct {
	Number  int
	Href    string
	Current bool
}

type row struct {
	ID          string
	Heading     string
	Number      string
	Description string
	PDFPath     string
	Filename    string
}

type pageData struct {
	Total    int
	Filtered int
	ByType   []statCard

	Search string
	From   string
	To     string
	Tab    string

	Tabs []tabLink
	Rows []row

	Empty        bool
	EmptyMessage string

	Pages        []pageLink
	Prev         string
	Next         string
	RangeStart   int
	RangeEnd     int
	ItemsPerPage int
}

func newPageData(v listing.View) pageData {
	s := v.State
	data := pageData{
		Total:        v.Total,
		Filtered:     v.Filtered,
		Search:       s.Search,
		From:         document.FormatBound(s.Dates.From),
		To:           document.FormatBound(s.Dates.To),
		Tab:          string(s.Tab),
		Empty:        v.Empty(),
		EmptyMessage: EmptyMessage,
		ItemsPerPage: v.ItemsPerPage,
	}

	for _, t := range document.Types {
		data.ByType = append(data.ByType, statCard{Label: t.Label(), Count: v.ByType[t]})
	}

	for _, t := range listing.Tabs {
		data.Tabs = append(data.Tabs, tabLink{
			Label:  t.Label(),
			Href:   listing.Reduce(s, listing.SetTab{Tab: t}).Href("/"),
			Active: t == s.Tab,
		})
	}

	for _, d := range v.Items {
		filename := d.Filename()
		data.Rows = append(data.Rows, row{
			ID:          d.ID,
			Heading:     listing.DisplayTitle(d),
			Number:      d.Number,
			Description: d.Description,
			PDFPath:     document.PDFPath(filename),
			Filename:    filename + ".pdf",
		})
	}

	if v.Empty() {
		return data
	}

	for n := 1; n <= v.TotalPages; n++ {
		data.Pages = append(data.Pages, pageLink{
			Number:  n,
			Href:    listing.Reduce(s, listing.SetPage{Page: n}).Href("/"),
			Current: n == s.Page,
		})
	}
	if s.Page > 1 {
		data.Prev = listing.Reduce(s, listing.SetPage{Page: s.Page - 1}).Href("/")
	}
	if s.Page < v.TotalPages {
		data.Next = listing.Reduce(s, listing.SetPage{Page: s.Page + 1}).Href("/")
	}
	data.RangeStart = (s.Page-1)*v.ItemsPerPage + 1
	data.RangeEnd = data.RangeStart + len(v.Items) - 1

	return data
}

// render buffers the whole page; nothing reaches w when execution fails
func (p *pageRenderer) render(w io.Writer, v listing.View) error {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, "page.html", newPageData(v)); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
