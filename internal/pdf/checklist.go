package pdf

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"

	"taskassistant/internal/models"
)

// Generator renders task documents. Handy to mock in handler tests.
type Generator interface {
	TaskChecklist(w io.Writer, task *models.Task) error
}

// ChecklistGenerator prints a task and its subtasks as an A4 checklist.
type ChecklistGenerator struct {
	// FontPath is a TTF with wide glyph coverage. When it is missing the
	// core Helvetica font is used and text is limited to cp1252.
	FontPath string
	fontName string
	useTTF   bool
	now      func() time.Time
}

func NewChecklistGenerator(fontPath string) *ChecklistGenerator {
	g := &ChecklistGenerator{FontPath: fontPath, fontName: "Helvetica", now: time.Now}
	if fontPath != "" {
		if _, err := os.Stat(fontPath); err == nil {
			g.fontName = "DejaVu"
			g.useTTF = true
		}
	}
	return g
}

func (g *ChecklistGenerator) TaskChecklist(w io.Writer, task *models.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(task.Title, true)
	pdf.SetAuthor("Task Assistant", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	tr := g.setupFont(pdf)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.MultiCell(0, 9, tr(task.Title), "", "L", false)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr("Priority: "+string(task.Priority)), "", 1, "L", false, 0, "")
	if task.Deadline != nil {
		pdf.CellFormat(0, 6, "Deadline: "+task.Deadline.Format("02.01.2006 15:04"), "", 1, "L", false, 0, "")
	}
	status := "in progress"
	if task.Completed {
		status = "completed"
	}
	pdf.CellFormat(0, 6, "Status: "+status, "", 1, "L", false, 0, "")
	g.hr(pdf)

	if task.Description != nil && *task.Description != "" {
		g.sectionTitle(pdf, "Description")
		pdf.MultiCell(0, 6, tr(*task.Description), "", "L", false)
		pdf.Ln(2)
		g.hr(pdf)
	}

	g.sectionTitle(pdf, fmt.Sprintf("Checklist (%d)", len(task.Subtasks)))
	subs := make([]models.Subtask, len(task.Subtasks))
	copy(subs, task.Subtasks)
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].Order < subs[j].Order })
	for _, s := range subs {
		g.checkLine(pdf, tr, s)
	}
	if len(subs) == 0 {
		pdf.CellFormat(0, 6, "No subtasks yet.", "", 1, "L", false, 0, "")
	}

	if task.EmotionalSupport != nil && *task.EmotionalSupport != "" {
		pdf.Ln(4)
		g.hr(pdf)
		pdf.SetFont(g.fontName, "I", 11)
		pdf.MultiCell(0, 6, tr(*task.EmotionalSupport), "", "L", false)
	}

	pdf.AliasNbPages("")
	generated := g.now().UTC().Format("02.01.2006 15:04")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 9)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Generated %s UTC  |  Page %d/{nb}", generated, pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	return pdf.Output(w)
}

// setupFont registers the TTF when available and returns the text
// translator matching the font.
func (g *ChecklistGenerator) setupFont(pdf *gofpdf.Fpdf) func(string) string {
	if !g.useTTF {
		return pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "I", g.FontPath)
	return func(s string) string { return s }
}

func (g *ChecklistGenerator) checkLine(pdf *gofpdf.Fpdf, tr func(string) string, s models.Subtask) {
	box := "[ ]"
	if s.Completed {
		box = "[x]"
	}
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(10, 6, box, "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	line := s.DisplayTitle()
	if s.Deadline != nil {
		line += "  (due " + s.Deadline.Format("02.01.2006") + ")"
	}
	pdf.MultiCell(0, 6, tr(line), "", "L", false)
	if s.Description != "" && s.Description != s.Title {
		pdf.SetX(30)
		pdf.SetFont(g.fontName, "", 9)
		pdf.MultiCell(0, 5, tr(s.Description), "", "L", false)
	}
}

func (g *ChecklistGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ChecklistGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
