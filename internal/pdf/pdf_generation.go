package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator is an interface so handlers can be tested with a stub.
type Generator interface {
	GenerateAcknowledgement(data AcknowledgementData) (string, error)
}

// FormGenerator renders printable application documents under RootDir.
type FormGenerator struct {
	RootDir  string
	fontName string
}

type AcademicLine struct {
	Level   string
	Board   string
	Subject string
	Year    string
	Score   string
}

type AcknowledgementData struct {
	ApplicationID string
	FullName      string
	Email         string
	DateOfBirth   string
	MajorSubjects []string
	MinorSubject  string
	Semester      string
	Academic      []AcademicLine
	SubmittedAt   time.Time
}

func NewFormGenerator(rootDir string) *FormGenerator {
	return &FormGenerator{
		RootDir:  filepath.Clean(rootDir),
		fontName: "Helvetica",
	}
}

// GenerateAcknowledgement writes the post-submission acknowledgement form and
// returns its reference path relative to the files root.
func (g *FormGenerator) GenerateAcknowledgement(data AcknowledgementData) (string, error) {
	filename := fmt.Sprintf("acknowledgement_%s.pdf", data.ApplicationID)
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Application %s", data.ApplicationID), false)
	pdf.SetAuthor("Admissions Portal", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// ===== Header
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "APPLICATION ACKNOWLEDGEMENT", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("%s  submitted on  %s",
		data.ApplicationID,
		data.SubmittedAt.Format("02.01.2006"),
	)
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.Ln(3)

	// ===== Candidate
	g.sectionTitle(pdf, "Candidate")
	g.kvLine(pdf, "Name", data.FullName)
	g.kvLine(pdf, "Email", data.Email)
	g.kvLine(pdf, "Date of birth", data.DateOfBirth)
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Course selection
	g.sectionTitle(pdf, "Course selection")
	for i, major := range data.MajorSubjects {
		g.kvLine(pdf, fmt.Sprintf("Major %d", i+1), major)
	}
	g.kvLine(pdf, "Minor", data.MinorSubject)
	g.kvLine(pdf, "Semester", data.Semester)
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Academic history
	g.sectionTitle(pdf, "Academic history")
	pdf.SetFont(g.fontName, "", 11)
	for _, line := range data.Academic {
		text := line.Level
		if line.Board != "" {
			text = fmt.Sprintf("%s — %s, %s (%s): %s", line.Level, line.Board, line.Subject, line.Year, line.Score)
		}
		pdf.MultiCell(0, 6, text, "", "L", false)
	}
	pdf.Ln(2)
	g.hr(pdf)

	pdf.SetFont(g.fontName, "", 11)
	pdf.MultiCell(0, 6,
		"This acknowledgement confirms that the application listed above has been received. "+
			"Keep the application id for all further correspondence with the admissions office.",
		"", "L", false)

	// ===== Page numbers
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(filepath.Base(absPath)), nil
}

// === helpers ===

func (g *FormGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure files root: %w", err)
	}
	return filepath.Join(g.RootDir, filepath.Base(filename)), nil
}

func (g *FormGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *FormGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *FormGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
