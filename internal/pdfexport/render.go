// Package pdfexport renders a workout plan as a printable PDF with a weekly calendar.
package pdfexport

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/i18n"
	"github.com/myrjola/fitplan/internal/workout"
)

// Layout in millimetres on an A4 portrait page.
const (
	pageCenter   = 105.0
	marginLeft   = 10.0
	marginRight  = 200.0
	indent       = 15.0
	contentWidth = 180.0
	topY         = 20.0
	tableBreakY  = 260.0
	bottomY      = 275.0
	footerY      = 290.0
	headerY      = 10.0
	lineSpacing  = 1.15
	ptToMM       = 0.3528
)

// Options control the parts of the document that do not come from the plan.
type Options struct {
	Language    i18n.Language
	GeneratedAt time.Time
}

type renderer struct {
	pdf  *fpdf.Fpdf
	tr   func(string) string
	lang i18n.Language
}

// Render writes plan as a PDF to w: a title page, one page per day, and a weekly calendar page.
// Every page but the first has the plan name as header and every page has a page counter footer.
func Render(w io.Writer, plan workout.Plan, opts Options) error {
	if err := newDocument(plan, opts).Output(w); err != nil {
		return errors.Wrap(err, "output pdf")
	}
	return nil
}

func newDocument(plan workout.Plan, opts Options) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	pdf.SetTitle(plan.Name, true)
	pdf.SetCreator(i18n.Translate(opts.Language, "app.title"), true)
	if !opts.GeneratedAt.IsZero() {
		pdf.SetCreationDate(opts.GeneratedAt)
	}
	r := &renderer{
		pdf:  pdf,
		tr:   pdf.UnicodeTranslatorFromDescriptor(""),
		lang: opts.Language,
	}

	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			pdf.SetFont("Helvetica", "", 8) //nolint:mnd // small print.
			pdf.SetTextColor(0, 0, 0)
			pdf.Text(marginLeft, headerY, r.tr(plan.Name))
		}
	})
	pdf.SetFooterFunc(func() {
		pdf.SetFont("Helvetica", "", 8) //nolint:mnd // small print.
		pdf.SetTextColor(0, 0, 0)
		footer := fmt.Sprintf("%s | %s", i18n.Translate(r.lang, "app.title"),
			i18n.Translatef(r.lang, "pdf.page", pdf.PageNo(), "{nb}"))
		r.centered(pageCenter, footerY, footer)
	})

	r.titlePage(plan.Name, opts.GeneratedAt)
	for _, day := range plan.Days {
		r.dayPage(day)
	}
	r.schedulePage(plan.Days)
	return pdf
}

func (r *renderer) t(key string) string {
	return i18n.Translate(r.lang, key)
}

func (r *renderer) lineHeight() float64 {
	size, _ := r.pdf.GetFontSize()
	return size * ptToMM * lineSpacing
}

// centered writes a single line of text horizontally centred on x.
func (r *renderer) centered(x, y float64, s string) {
	s = r.tr(s)
	r.pdf.Text(x-r.pdf.GetStringWidth(s)/2, y, s) //nolint:mnd // half width.
}

// paragraph wraps s to width and writes it from y, breaking pages as needed. It returns the y below the text.
func (r *renderer) paragraph(x, y, width float64, s string) float64 {
	lh := r.lineHeight()
	for _, block := range strings.Split(s, "\n") {
		for _, line := range r.pdf.SplitLines([]byte(r.tr(block)), width) {
			if y > bottomY {
				r.pdf.AddPage()
				y = topY
			}
			r.pdf.Text(x, y, string(line))
			y += lh
		}
	}
	return y
}

func (r *renderer) titlePage(name string, generatedAt time.Time) {
	r.pdf.AddPage()
	r.pdf.SetFont("Helvetica", "B", 38) //nolint:mnd // title size.
	r.pdf.SetTextColor(0, 0, 0)
	y := 140.0 //nolint:mnd // vertically centred.
	lh := r.lineHeight()
	for _, line := range r.pdf.SplitLines([]byte(r.tr(name)), 160) { //nolint:mnd // title width.
		r.pdf.Text(pageCenter-r.pdf.GetStringWidth(string(line))/2, y, string(line)) //nolint:mnd // half width.
		y += lh
	}
	y += 2

	r.pdf.SetFont("Helvetica", "", 14) //nolint:mnd // subtitle size.
	r.pdf.SetTextColor(128, 128, 128)  //nolint:mnd // grey.
	r.centered(pageCenter, y, r.t("pdf.subtitle"))
	if !generatedAt.IsZero() {
		r.pdf.SetFont("Helvetica", "", 10) //nolint:mnd // small print.
		r.centered(pageCenter, y+8, i18n.Translatef(r.lang, "pdf.generated", generatedAt.Format(time.DateOnly)))
	}
	r.pdf.SetTextColor(0, 0, 0)
}

func (r *renderer) dayPage(day workout.Day) {
	r.pdf.AddPage()
	y := topY

	r.pdf.SetFont("Helvetica", "B", 18) //nolint:mnd // day heading.
	y = r.paragraph(marginLeft, y, contentWidth, day.Label+": "+day.Focus)
	y += 4

	y = r.section(y, r.t("result.warmup"), day.Warmup)
	y += 4

	// The heading stays with the table header and the first row.
	if y > tableBreakY {
		r.pdf.AddPage()
		y = topY
	}
	r.pdf.SetFont("Helvetica", "B", 14) //nolint:mnd // section heading.
	r.pdf.Text(marginLeft, y, r.tr(r.t("pdf.main_workout")))
	y += 8
	y = r.tableHeader(y)
	for _, ex := range day.Exercises {
		if y > tableBreakY {
			r.pdf.AddPage()
			y = r.tableHeader(topY)
		}
		y = r.exerciseRow(y, ex)
	}
	y += 8

	if y > tableBreakY {
		r.pdf.AddPage()
		y = topY
	}
	r.section(y, r.t("result.cooldown"), day.Cooldown)
}

func (r *renderer) section(y float64, title, markdown string) float64 {
	r.pdf.SetFont("Helvetica", "B", 14) //nolint:mnd // section heading.
	r.pdf.Text(marginLeft, y, r.tr(title))
	y += 6
	r.pdf.SetFont("Helvetica", "", 12) //nolint:mnd // body text.
	return r.paragraph(indent, y, contentWidth, plainText(markdown))
}

// Column anchors of the exercise table. Numbers are centred on their anchor.
const (
	colSets = 120.0
	colReps = 150.0
	colRest = 180.0
)

func (r *renderer) tableHeader(y float64) float64 {
	r.pdf.SetFont("Helvetica", "B", 10) //nolint:mnd // table text.
	r.pdf.Text(marginLeft, y, r.tr(r.t("result.exercise")))
	r.centered(colSets, y, r.t("result.sets"))
	r.centered(colReps, y, r.t("result.reps"))
	r.centered(colRest, y, r.t("result.rest"))
	y += 2
	r.pdf.Line(marginLeft, y, marginRight, y)
	y += 5
	r.pdf.SetFont("Helvetica", "", 10) //nolint:mnd // table text.
	return y
}

func (r *renderer) exerciseRow(y float64, ex workout.Exercise) float64 {
	const rowLineHeight = 4.0
	name := ex.Name
	if ex.Notes != "" {
		name += " (" + strings.ReplaceAll(plainText(ex.Notes), "\n", " ") + ")"
	}
	lines := r.pdf.SplitLines([]byte(r.tr(name)), 95) //nolint:mnd // name column width.
	for i, line := range lines {
		r.pdf.Text(marginLeft, y+float64(i)*rowLineHeight, string(line))
	}
	r.centered(colSets, y, ex.Sets)
	r.centered(colReps, y, ex.Reps)
	r.centered(colRest, y, ex.Rest)
	return y + float64(max(len(lines), 1))*rowLineHeight + 4 //nolint:mnd // row gap.
}

var weekdayKeys = [daysInWeek]string{ //nolint:gochecknoglobals // fixed labels.
	"weekday.mon", "weekday.tue", "weekday.wed", "weekday.thu", "weekday.fri", "weekday.sat", "weekday.sun",
}

func (r *renderer) schedulePage(days []workout.Day) {
	const (
		tableX    = 15.0
		colWidth  = 26.0
		rowHeight = 25.0
	)
	r.pdf.AddPage()
	r.pdf.SetFont("Helvetica", "B", 20) //nolint:mnd // page title.
	r.centered(pageCenter, topY, r.t("pdf.schedule"))
	tableY := topY + 20 //nolint:mnd // gap below title.

	r.pdf.SetFont("Helvetica", "B", 10) //nolint:mnd // table text.
	r.pdf.SetDrawColor(0, 0, 0)
	r.pdf.SetFillColor(0, 0, 0)
	r.pdf.SetTextColor(255, 255, 255) //nolint:mnd // white.
	for i, key := range weekdayKeys {
		x := tableX + float64(i)*colWidth
		r.pdf.Rect(x, tableY, colWidth, rowHeight/2, "FD") //nolint:mnd // header row is half height.
		r.centered(x+colWidth/2, tableY+8, r.t(key))       //nolint:mnd // baseline.
	}

	r.pdf.SetFont("Helvetica", "", 9) //nolint:mnd // cell text.
	cellY := tableY + rowHeight/2     //nolint:mnd // below header.
	for i, slot := range WeeklySchedule(days) {
		x := tableX + float64(i)*colWidth
		label := slot.Focus
		if slot.Rest {
			label = r.t("pdf.rest_day")
			r.pdf.SetFillColor(245, 245, 245) //nolint:mnd // light grey.
			r.pdf.SetTextColor(150, 150, 150) //nolint:mnd // grey.
		} else {
			r.pdf.SetFillColor(224, 255, 255) //nolint:mnd // light cyan.
			r.pdf.SetTextColor(0, 0, 0)
		}
		r.pdf.Rect(x, cellY, colWidth, rowHeight, "FD")
		lines := r.pdf.SplitLines([]byte(r.tr(label)), colWidth-4) //nolint:mnd // inner margin.
		offset := 12.0
		if len(lines) > 1 {
			offset = 8
		}
		for j, line := range lines {
			s := string(line)
			r.pdf.Text(x+colWidth/2-r.pdf.GetStringWidth(s)/2, cellY+offset+float64(j)*4, s) //nolint:mnd // centred.
		}
	}
	r.pdf.SetTextColor(0, 0, 0)
}
