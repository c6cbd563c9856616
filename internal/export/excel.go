package export

import (
	"fmt"
	"io"

	"go-resume-coach/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	TranscriptSheet = "Transcript"
	ContextSheet    = "Context"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WriteTranscript streams the conversation and its job context as an .xlsx workbook to w
func WriteTranscript(w io.Writer, messages []models.Message, job models.JobContext, resume models.ResumeState) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TranscriptSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(ContextSheet); err != nil {
		return fmt.Errorf("failed to create context sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeTranscriptSheet(f, messages, headerStyle); err != nil {
		return fmt.Errorf("failed to create transcript sheet: %w", err)
	}
	if err := writeContextSheet(f, job, resume, headerStyle); err != nil {
		return fmt.Errorf("failed to create context sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeTranscriptSheet(f *excelize.File, messages []models.Message, headerStyle int) error {
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}

	w := &sheetWriter{f: f, sheet: TranscriptSheet}
	headers := []string{"#", "Role", "Time", "Content"}
	for col, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+col)))
		w.value(cell, header)
		w.style(cell, cell, headerStyle)
	}

	for i, msg := range messages {
		row := i + 2
		w.value(fmt.Sprintf("A%d", row), i+1)
		w.value(fmt.Sprintf("B%d", row), string(msg.Role))
		w.value(fmt.Sprintf("C%d", row), msg.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		w.value(fmt.Sprintf("D%d", row), msg.Content)
		w.style(fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), wrapStyle)
	}

	w.width("A", 5)
	w.width("B", 12)
	w.width("C", 20)
	w.width("D", 100)
	return w.err
}

func writeContextSheet(f *excelize.File, job models.JobContext, resume models.ResumeState, headerStyle int) error {
	w := &sheetWriter{f: f, sheet: ContextSheet}
	w.value("A1", "Field")
	w.value("B1", "Value")
	w.style("A1", "B1", headerStyle)

	rows := [][2]any{
		{"Target Job Title", job.Title},
		{"Job Requirements", job.Requirements},
		{"Experience Level", job.ExperienceLevel},
		{"Resume File", resume.FileName},
		{"Upload Status", string(resume.Status)},
		{"Resume Characters", resume.Chars()},
	}
	for i, r := range rows {
		row := i + 2
		w.value(fmt.Sprintf("A%d", row), r[0])
		w.value(fmt.Sprintf("B%d", row), r[1])
	}

	w.width("A", 22)
	w.width("B", 60)
	return w.err
}

// sheetWriter keeps the first excelize error and skips every call after it
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) value(cell string, v any) {
	if w.err == nil {
		w.err = w.f.SetCellValue(w.sheet, cell, v)
	}
}

func (w *sheetWriter) style(from, to string, styleID int) {
	if w.err == nil {
		w.err = w.f.SetCellStyle(w.sheet, from, to, styleID)
	}
}

func (w *sheetWriter) width(col string, width float64) {
	if w.err == nil {
		w.err = w.f.SetColWidth(w.sheet, col, col, width)
	}
}
