package export

import (
	"bytes"
	"testing"
	"time"

	"go-resume-coach/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteTranscript(t *testing.T) {
	at := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	messages := []models.Message{
		{ID: "1", Role: models.RoleAssistant, Content: models.Greeting, CreatedAt: at},
		{ID: "2", Role: models.RoleUser, Content: "Review my CV", CreatedAt: at.Add(time.Minute)},
		{ID: "3", Role: models.RoleAssistant, Content: "## Skills\n- Add Go", CreatedAt: at.Add(2 * time.Minute)},
	}
	job := models.JobContext{Title: "Backend Engineer", ExperienceLevel: "Senior"}
	resume := models.ResumeState{Text: "Jane Doe", FileName: "cv.pdf", Status: models.UploadSuccess}

	var buf bytes.Buffer
	require.NoError(t, WriteTranscript(&buf, messages, job, resume))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{TranscriptSheet, ContextSheet}, f.GetSheetList())

	rows, err := f.GetRows(TranscriptSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"#", "Role", "Time", "Content"}, rows[0])
	assert.Equal(t, []string{"2", "user", "2026-05-06 07:09:09", "Review my CV"}, rows[2])
	assert.Equal(t, "## Skills\n- Add Go", rows[3][3])

	ctxRows, err := f.GetRows(ContextSheet)
	require.NoError(t, err)
	values := map[string]string{}
	for _, r := range ctxRows[1:] {
		if len(r) == 2 {
			values[r[0]] = r[1]
		}
	}
	assert.Equal(t, "Backend Engineer", values["Target Job Title"])
	assert.Equal(t, "Senior", values["Experience Level"])
	assert.Equal(t, "cv.pdf", values["Resume File"])
	assert.Equal(t, "success", values["Upload Status"])
	assert.Equal(t, "8", values["Resume Characters"])
}

func TestWriteTranscriptEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTranscript(&buf, nil, models.JobContext{}, models.ResumeState{Status: models.UploadNone}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(TranscriptSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSheetWritersReturnExcelizeErrors(t *testing.T) {
	//a fresh workbook only has Sheet1, so both target sheets are missing
	f := excelize.NewFile()
	defer f.Close()

	assert.Error(t, writeTranscriptSheet(f, []models.Message{{Role: models.RoleUser, Content: "hi"}}, 0))
	assert.Error(t, writeContextSheet(f, models.JobContext{}, models.ResumeState{}, 0))
}

func TestSheetWriterKeepsFirstError(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	w := &sheetWriter{f: f, sheet: "Sheet1"}
	w.value("A1", "ok")
	require.NoError(t, w.err)

	w.width("A", 1000)
	first := w.err
	require.Error(t, first)

	w.value("not-a-cell", "x")
	assert.Equal(t, first, w.err)

	v, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}
