// Package export renders the HR candidate report as an Excel workbook.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mohit-756/interview-bot/internal/models"
	"github.com/xuri/excelize/v2"
)

// Sheet names
const (
	SummarySheet    = "Summary"
	CandidatesSheet = "Candidates"
)

// Score band fills, shared by the candidates sheet and the summary legend
const (
	excellentFill = "C6EFCE"
	goodFill      = "FFEB9C"
	fairFill      = "FFC7CE"
	poorFill      = "FF9999"
	unscoredFill  = "F2F2F2"
	headerFill    = "4472C4"
)

var candidateHeaders = []string{
	"Rank", "ID", "Name", "Email", "Job Description", "Status", "Type", "Final Score",
	"Decision", "Strength", "Weakness", "Interview Date", "Communication", "Answered", "Resume",
}

// Band names a final-score bucket
type Band string

const (
	BandExcellent Band = "Excellent (90-100)"
	BandGood      Band = "Good (70-89)"
	BandFair      Band = "Fair (50-69)"
	BandPoor      Band = "Poor (<50)"
	BandUnscored  Band = "Not scored"
)

var bandOrder = []Band{BandExcellent, BandGood, BandFair, BandPoor, BandUnscored}

// ScoreBand buckets a candidate by its resume score
func ScoreBand(c *models.Candidate) Band {
	if c == nil || c.Phase1Result == nil {
		return BandUnscored
	}
	score := c.Phase1Result.FinalScore
	switch {
	case score >= 90:
		return BandExcellent
	case score >= 70:
		return BandGood
	case score >= 50:
		return BandFair
	default:
		return BandPoor
	}
}

func bandFill(b Band) string {
	switch b {
	case BandExcellent:
		return excellentFill
	case BandGood:
		return goodFill
	case BandFair:
		return fairFill
	case BandPoor:
		return poorFill
	}
	return unscoredFill
}

// ExportToFile writes the report to outputPath and returns the path actually
// written. A missing .xlsx extension is appended.
func ExportToFile(outputPath string, candidates []*models.Candidate, jds []*models.JDConfig) (string, error) {
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	f, err := buildWorkbook(candidates, jds, time.Now())
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(outputPath); err != nil {
		// SaveAs can fail on some filesystems where a plain write succeeds
		var buf bytes.Buffer
		if writeErr := f.Write(&buf); writeErr != nil {
			return "", fmt.Errorf("failed to save Excel file: direct save failed (%v), buffer write also failed: %w", err, writeErr)
		}
		if fileErr := os.WriteFile(outputPath, buf.Bytes(), 0644); fileErr != nil {
			return "", fmt.Errorf("failed to save Excel file: direct save failed (%v), file write failed: %w", err, fileErr)
		}
	}
	return outputPath, nil
}

// WriteCandidateReport streams the report workbook to w
func WriteCandidateReport(w io.Writer, candidates []*models.Candidate, jds []*models.JDConfig) error {
	f, err := buildWorkbook(candidates, jds, time.Now())
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write Excel report: %w", err)
	}
	return nil
}

func buildWorkbook(candidates []*models.Candidate, jds []*models.JDConfig, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()

	ranked := rankCandidates(candidates)
	titles := make(map[int64]string, len(jds))
	for _, jd := range jds {
		if jd != nil {
			titles[jd.ID] = jd.Title
		}
	}

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename default sheet: %w", err)
	}
	if _, err := f.NewSheet(CandidatesSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create candidates sheet: %w", err)
	}

	if err := createSummarySheet(f, SummarySheet, ranked, len(jds), now); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := createCandidatesSheet(f, CandidatesSheet, ranked, titles); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create candidates sheet: %w", err)
	}
	return f, nil
}

// rankCandidates orders by final score, highest first. Unscored candidates
// go last, newest first.
func rankCandidates(candidates []*models.Candidate) []*models.Candidate {
	out := make([]*models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Phase1Result, out[j].Phase1Result
		switch {
		case a != nil && b != nil:
			if a.FinalScore != b.FinalScore {
				return a.FinalScore > b.FinalScore
			}
			return out[i].ID > out[j].ID
		case a != nil:
			return true
		case b != nil:
			return false
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func fillStyle(f *excelize.File, color string, link bool) (int, error) {
	style := &excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Border: thinBorder(),
	}
	if link {
		style.Font = &excelize.Font{Color: "0563C1", Underline: "single"}
	}
	return f.NewStyle(style)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// createSummarySheet writes report metadata, status counts and score statistics
func createSummarySheet(f *excelize.File, sheetName string, candidates []*models.Candidate, jdCount int, now time.Time) error {
	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "B", 30)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	row := 1
	section := func(title string) {
		f.SetCellValue(sheetName, cell(1, row), title)
		f.SetCellStyle(sheetName, cell(1, row), cell(2, row), headerStyle)
		f.MergeCell(sheetName, cell(1, row), cell(2, row))
		row++
	}
	line := func(label string, value any) {
		f.SetCellValue(sheetName, cell(1, row), label)
		f.SetCellStyle(sheetName, cell(1, row), cell(1, row), labelStyle)
		f.SetCellValue(sheetName, cell(2, row), value)
		row++
	}

	section("Candidate Report")
	row++
	line("Generated:", now.Format("2006-01-02 15:04:05"))
	line("Total Candidates:", len(candidates))
	line("Job Descriptions:", jdCount)
	row++

	section("Status:")
	statusCounts := make(map[models.CandidateStatus]int)
	for _, c := range candidates {
		statusCounts[c.Status]++
	}
	for _, s := range []models.CandidateStatus{
		models.StatusNew, models.StatusShortlisted, models.StatusRejected,
		models.StatusScheduled, models.StatusInterviewCompleted,
	} {
		line(string(s)+":", statusCounts[s])
	}
	row++

	section("Resume Scores:")
	bandCounts := make(map[Band]int)
	var scored []float64
	for _, c := range candidates {
		bandCounts[ScoreBand(c)]++
		if c.Phase1Result != nil {
			scored = append(scored, c.Phase1Result.FinalScore)
		}
	}
	for _, b := range bandOrder {
		bandStyle, err := fillStyle(f, bandFill(b), false)
		if err != nil {
			return err
		}
		f.SetCellValue(sheetName, cell(1, row), string(b)+":")
		f.SetCellStyle(sheetName, cell(1, row), cell(1, row), bandStyle)
		f.SetCellValue(sheetName, cell(2, row), bandCounts[b])
		row++
	}
	row++

	if len(scored) > 0 {
		minScore, maxScore, total := scored[0], scored[0], 0.0
		for _, s := range scored {
			total += s
			if s < minScore {
				minScore = s
			}
			if s > maxScore {
				maxScore = s
			}
		}
		line("Average Score:", fmt.Sprintf("%.2f", total/float64(len(scored))))
		line("Highest Score:", fmt.Sprintf("%.2f", maxScore))
		line("Lowest Score:", fmt.Sprintf("%.2f", minScore))
		row++
	}

	var interviewed, communication int
	for _, c := range candidates {
		if c.InterviewSummary != nil {
			interviewed++
			communication += c.InterviewSummary.CommunicationScore
		}
	}
	section("Interviews:")
	line("Completed:", interviewed)
	if interviewed > 0 {
		line("Average Communication:", fmt.Sprintf("%.2f", float64(communication)/float64(interviewed)))
	}

	return nil
}

// createCandidatesSheet writes one colour-coded row per candidate
func createCandidatesSheet(f *excelize.File, sheetName string, candidates []*models.Candidate, titles map[int64]string) error {
	widths := []float64{8, 8, 22, 28, 24, 20, 12, 12, 12, 22, 22, 18, 14, 10, 14}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return err
	}

	rowStyles := make(map[Band]int, len(bandOrder))
	linkStyles := make(map[Band]int, len(bandOrder))
	for _, b := range bandOrder {
		if rowStyles[b], err = fillStyle(f, bandFill(b), false); err != nil {
			return err
		}
		if linkStyles[b], err = fillStyle(f, bandFill(b), true); err != nil {
			return err
		}
	}

	for col, header := range candidateHeaders {
		f.SetCellValue(sheetName, cell(col+1, 1), header)
		f.SetCellStyle(sheetName, cell(col+1, 1), cell(col+1, 1), headerStyle)
	}

	last := len(candidateHeaders)
	for i, c := range candidates {
		row := i + 2
		values := candidateRow(i+1, c, titles)
		for col, v := range values {
			f.SetCellValue(sheetName, cell(col+1, row), v)
		}

		band := ScoreBand(c)
		f.SetCellStyle(sheetName, cell(1, row), cell(last, row), rowStyles[band])

		if c.ResumePath != "" {
			linkCell := cell(last, row)
			absPath, err := filepath.Abs(c.ResumePath)
			if err != nil {
				absPath = c.ResumePath
			}
			f.SetCellValue(sheetName, linkCell, "Open resume")
			fileURL := "file:///" + strings.TrimPrefix(strings.ReplaceAll(absPath, "\\", "/"), "/")
			f.SetCellHyperLink(sheetName, linkCell, fileURL, "External")
			f.SetCellStyle(sheetName, linkCell, linkCell, linkStyles[band])
		}
	}

	if len(candidates) > 0 {
		f.AutoFilter(sheetName, fmt.Sprintf("A1:%s", cell(last, len(candidates)+1)), []excelize.AutoFilterOptions{})
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}

// candidateRow renders every column except the resume link
func candidateRow(rank int, c *models.Candidate, titles map[int64]string) []any {
	jd := ""
	if c.JDConfigID != nil {
		jd = titles[*c.JDConfigID]
		if jd == "" {
			jd = fmt.Sprintf("#%d", *c.JDConfigID)
		}
	}

	var candidateType, score, decision, strength, weakness string
	if r := c.Phase1Result; r != nil {
		candidateType = string(r.CandidateType)
		score = fmt.Sprintf("%.2f", r.FinalScore)
		decision = string(r.Decision)
		strength = r.Strength
		weakness = r.Weakness
	}

	communication, answered := "", ""
	if s := c.InterviewSummary; s != nil {
		communication = fmt.Sprintf("%d/10", s.CommunicationScore)
		answered = fmt.Sprintf("%d/%d", s.AnsweredCount, s.TotalQuestions)
	}

	return []any{
		rank, c.ID, c.Name, c.Email, jd, string(c.Status), candidateType, score,
		decision, strength, weakness, c.InterviewDate, communication, answered, "",
	}
}
