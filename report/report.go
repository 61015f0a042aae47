// Package report describes a composed tune for humans: how the data was
// read, which sections were planned and what each stream contributes.
package report

import (
	"embed"
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/datatune/datatune"
	"github.com/datatune/datatune/compose"
	"github.com/hako/durafmt"
	"github.com/viterin/vek"
)

//go:embed templates/*.txt
var templateFS embed.FS

type (
	// Summary is the data behind the report template.
	Summary struct {
		Title        string
		Cadence      datatune.Cadence
		Aligned      bool
		Style        datatune.Style
		Seed         int64
		Scale        string
		Bars         int
		DataBars     int
		Duration     string
		ChorusPolicy compose.ChorusPolicy
		Sections     []datatune.TuneSection
		Streams      []StreamSummary
		Support      []SupportSummary
	}

	// StreamSummary describes one data stream and its melody track.
	StreamSummary struct {
		Index   int // 1-based
		Name    string
		Primary bool
		Values  int
		Mean    float64
		Max     float64
		Notes   int
		Channel uint8
	}

	// SupportSummary describes one support track.
	SupportSummary struct {
		Name    string
		Channel uint8
		Notes   int
	}
)

// Reporter renders summaries with a template.
type Reporter struct {
	Template *template.Template
}

// New returns a Reporter using the built-in template.
func New() (*Reporter, error) {
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf(`could not create templates: %v`, err)
	}
	return &Reporter{Template: tmpl}, nil
}

// Summarise collects the summary of a composition of data.
func Summarise(data datatune.Dataset, c compose.Composition) Summary {
	s := Summary{
		Title:        c.Tune.Name,
		Cadence:      c.Cadence,
		Aligned:      c.Aligned,
		Style:        c.Params.Style,
		Seed:         c.Params.Seed,
		Scale:        c.Scale.String(),
		Bars:         c.Tune.NumBars(),
		DataBars:     c.DataBars,
		Duration:     durafmt.Parse(c.Tune.Duration()).LimitFirstN(2).String(),
		ChorusPolicy: c.ChorusPolicy,
	}
	if s.Title == "" {
		s.Title = "untitled"
	}
	if plan, ok := c.Tune.Plan(); ok {
		for _, sec := range plan.Sections {
			s.Sections = append(s.Sections, sec)
		}
	}
	for i, m := range c.Tune.MelodyTracks {
		stream := c.Streams[i]
		values := streamValues(data, stream)
		ss := StreamSummary{
			Index:   stream + 1,
			Name:    m.Setup.Name,
			Primary: c.Bounds.IsPrimary(stream),
			Values:  len(values),
			Channel: m.Setup.Channel,
		}
		if len(values) > 0 {
			ss.Mean = vek.Mean(values)
			ss.Max = vek.Max(values)
		}
		for _, b := range m.Bars {
			ss.Notes += b.Sounding()
		}
		s.Streams = append(s.Streams, ss)
	}
	for _, t := range c.Tune.SupportTracks {
		ss := SupportSummary{Name: t.Setup.Name, Channel: t.Setup.Channel}
		for _, b := range t.Bars {
			ss.Notes += b.Len()
		}
		s.Support = append(s.Support, ss)
	}
	return s
}

func streamValues(data datatune.Dataset, stream int) []float64 {
	var ret []float64
	for _, r := range data.Rows {
		if v, ok := r.Datum(stream).Value(); ok {
			ret = append(ret, v)
		}
	}
	return ret
}

// Write renders the summary.
func (r *Reporter) Write(w io.Writer, s Summary) error {
	if err := r.Template.ExecuteTemplate(w, "summary.txt", s); err != nil {
		return fmt.Errorf(`could not execute template "summary.txt": %v`, err)
	}
	return nil
}
