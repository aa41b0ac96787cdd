package tasklist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/linklens/linklens/internal/model"
)

// Sentinel errors returned by the loaders.
var (
	// ErrMissingURLColumn means the header row has no "Page URL" column.
	ErrMissingURLColumn = errors.New("tasklist: input has no 'Page URL' column")

	// ErrEmptyInput means the file held no data rows.
	ErrEmptyInput = errors.New("tasklist: input contains no rows")

	// ErrUnsupportedFormat means the file extension is neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("tasklist: unsupported input format")
)

// Defaults supply a target for inputs that carry only page URLs.
// They apply to every row that has no target columns of its own.
type Defaults struct {
	// TargetDomain is the domain each page is expected to link to.
	TargetDomain string

	// ExpectedPath optionally narrows the match to hrefs containing it.
	ExpectedPath string

	// ExpectedAnchor optionally requires exact anchor text.
	ExpectedAnchor string
}

// Load reads tasks from path, choosing the reader by file extension.
// sheet selects the XLSX worksheet; empty means the first sheet.
func Load(path, sheet string, defaults Defaults) ([]model.AnalysisTask, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path, defaults)
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, sheet, defaults)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadCSV reads tasks from a CSV file.
func LoadCSV(path string, defaults Defaults) ([]model.AnalysisTask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tasklist: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // sheets exported by hand are often ragged
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tasklist: read %s: %w", path, err)
	}
	return fromRows(rows, defaults)
}

// LoadXLSX reads tasks from an Excel workbook.
// sheet selects the worksheet; empty means the first sheet.
func LoadXLSX(path, sheet string, defaults Defaults) ([]model.AnalysisTask, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("tasklist: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only workbook

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptyInput
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("tasklist: read sheet %q: %w", sheet, err)
	}
	return fromRows(rows, defaults)
}

// targetPair holds the column indexes of one TARGET PAGE/ANCHOR pair.
type targetPair struct {
	slot      int
	targetCol int
	anchorCol int // -1 when the sheet has no matching anchor column
}

var (
	targetHeaderRe = regexp.MustCompile(`^target page\s*(\d*)$`)
	anchorHeaderRe = regexp.MustCompile(`^anchor\s*(\d*)$`)
)

// fromRows converts raw sheet rows into tasks.
func fromRows(rows [][]string, defaults Defaults) ([]model.AnalysisTask, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	urlCol, pairs, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	tasks := make([]model.AnalysisTask, 0, len(rows)-1)
	for _, row := range rows[1:] {
		pageURL := strings.TrimSpace(cell(row, urlCol))
		if pageURL == "" {
			continue
		}

		emitted := 0
		for _, pair := range pairs {
			target := strings.TrimSpace(cell(row, pair.targetCol))
			if target == "" {
				continue
			}
			anchor := ""
			if pair.anchorCol >= 0 {
				anchor = strings.TrimSpace(cell(row, pair.anchorCol))
			}
			tasks = append(tasks, taskFor(pageURL, target, anchor, defaults))
			emitted++
		}

		if emitted == 0 {
			if defaults.TargetDomain != "" {
				tasks = append(tasks, model.AnalysisTask{
					URL:                pageURL,
					TargetDomain:       defaults.TargetDomain,
					ExpectedTargetPath: defaults.ExpectedPath,
					ExpectedAnchorText: defaults.ExpectedAnchor,
				})
			} else {
				// Keep the row visible in the output as a skipped record.
				tasks = append(tasks, model.AnalysisTask{URL: pageURL})
			}
		}
	}

	if len(tasks) == 0 {
		return nil, ErrEmptyInput
	}
	return tasks, nil
}

// parseHeader locates the page URL column and the target/anchor pairs.
func parseHeader(header []string) (int, []targetPair, error) {
	urlCol := -1
	pairsBySlot := make(map[int]*targetPair)

	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case name == "page url" || name == "url":
			if urlCol == -1 {
				urlCol = i
			}
		case targetHeaderRe.MatchString(name):
			slot := slotOf(targetHeaderRe.FindStringSubmatch(name)[1])
			p := pairFor(pairsBySlot, slot)
			p.targetCol = i
		case anchorHeaderRe.MatchString(name):
			slot := slotOf(anchorHeaderRe.FindStringSubmatch(name)[1])
			p := pairFor(pairsBySlot, slot)
			p.anchorCol = i
		}
	}

	if urlCol == -1 {
		return 0, nil, ErrMissingURLColumn
	}

	pairs := make([]targetPair, 0, len(pairsBySlot))
	for _, p := range pairsBySlot {
		if p.targetCol >= 0 {
			pairs = append(pairs, *p)
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].slot < pairs[j].slot })
	return urlCol, pairs, nil
}

func pairFor(m map[int]*targetPair, slot int) *targetPair {
	p, ok := m[slot]
	if !ok {
		p = &targetPair{slot: slot, targetCol: -1, anchorCol: -1}
		m[slot] = p
	}
	return p
}

// slotOf maps a header's numeric suffix to a pair slot; a bare
// "TARGET PAGE" or "ANCHOR" header is slot 1.
func slotOf(suffix string) int {
	if suffix == "" {
		return 1
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// taskFor builds a task from one target cell. A full URL contributes both
// its domain and its path (the path narrows the match, as the original
// sheets intend); a bare domain matches any link to that site; a bare path
// ("/landing") combines with the default target domain.
func taskFor(pageURL, target, anchor string, defaults Defaults) model.AnalysisTask {
	task := model.AnalysisTask{
		URL:                pageURL,
		TargetDomain:       target,
		ExpectedAnchorText: anchor,
	}

	if strings.HasPrefix(target, "/") {
		task.TargetDomain = defaults.TargetDomain
		task.ExpectedTargetPath = target
		return task
	}

	raw := target
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
		if p := u.EscapedPath(); p != "" && p != "/" {
			task.ExpectedTargetPath = p
		}
	}
	return task
}

// cell returns row[i] or "" when the row is too short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
