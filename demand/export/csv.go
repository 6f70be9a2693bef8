// Package export writes generated rows as a long CSV table, optionally with
// a YAML header describing the dataset that produced them.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rvtsukanov/fakedemand/demand"
	"github.com/rvtsukanov/fakedemand/demand/dataset"
)

// Reserved leading columns.
const (
	ColumnDate        = "date"
	ColumnID          = "id"
	ColumnGroupID     = "group_id"
	ColumnGroupConfig = "group_config"
)

// Header is the YAML sidecar written next to a dataset CSV.
type Header struct {
	Seed       int64                  `yaml:"seed"`
	Axis       dataset.AxisSpec       `yaml:"axis"`
	Statistics dataset.Statistics     `yaml:"statistics"`
	Groups     []dataset.GroupSummary `yaml:"groups"`
}

// NewHeader describes a generated RowSet.
func NewHeader(rs *dataset.RowSet) Header {
	return Header{
		Seed:       rs.Seed(),
		Axis:       dataset.AxisSpecOf(rs.Axis()),
		Statistics: rs.Statistics(),
		Groups:     rs.Summary(),
	}
}

// taggedRow is a row with the optional group columns already rendered.
type taggedRow struct {
	row    *demand.Row
	groups []string
}

// WriteRows writes rows as a long table: date, id, then the union of factor
// columns in first-seen order. Cells are empty where a row lacks a column.
func WriteRows(w io.Writer, rows []*demand.Row) error {
	tagged := make([]taggedRow, len(rows))
	for i, r := range rows {
		tagged[i] = taggedRow{row: r}
	}
	return writeTable(w, tagged, nil)
}

// WriteRowSet writes every row of a generated RowSet. With includeGroupInfo
// the group_id and group_config columns follow id.
func WriteRowSet(w io.Writer, rs *dataset.RowSet, includeGroupInfo bool) error {
	if err := rs.Generated(); err != nil {
		return err
	}
	var tagged []taggedRow
	var extra []string
	if includeGroupInfo {
		extra = []string{ColumnGroupID, ColumnGroupConfig}
	}
	for gid, rows := range rs.Groups() {
		cfg, _ := rs.GroupConfig(gid)
		for _, r := range rows {
			t := taggedRow{row: r}
			if includeGroupInfo {
				t.groups = []string{strconv.Itoa(gid), cfg.String()}
			}
			tagged = append(tagged, t)
		}
	}
	return writeTable(w, tagged, extra)
}

func writeTable(w io.Writer, rows []taggedRow, extra []string) error {
	var names []string
	seen := make(map[string]bool)
	for _, t := range rows {
		for _, c := range t.row.Columns() {
			if !seen[c.Name] {
				seen[c.Name] = true
				names = append(names, c.Name)
			}
		}
	}

	writer := csv.NewWriter(w)
	header := append([]string{ColumnDate, ColumnID}, extra...)
	header = append(header, names...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, t := range rows {
		values := make(map[string][]float64, len(names))
		for _, c := range t.row.Columns() {
			values[c.Name] = c.Values
		}
		id := strconv.Itoa(t.row.ID())
		for i, d := range t.row.Dates() {
			record := make([]string, 0, len(header))
			record = append(record, d.Format(time.DateOnly), id)
			record = append(record, t.groups...)
			for _, name := range names {
				v := values[name]
				if i < len(v) {
					record = append(record, strconv.FormatFloat(v[i], 'f', -1, 64))
				} else {
					record = append(record, "")
				}
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("writing CSV row %d: %w", t.row.ID(), err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// WriteHeader writes the YAML header of a generated RowSet to path.
func WriteHeader(path string, rs *dataset.RowSet) error {
	if err := rs.Generated(); err != nil {
		return err
	}
	data, err := yaml.Marshal(NewHeader(rs))
	if err != nil {
		return fmt.Errorf("marshaling dataset header: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing dataset header: %w", err)
	}
	return nil
}

// ExportDataset writes the header (YAML) and data (CSV) to separate files.
// An empty headerPath skips the header.
func ExportDataset(rs *dataset.RowSet, headerPath, dataPath string, includeGroupInfo bool) error {
	if err := rs.Generated(); err != nil {
		return err
	}
	if headerPath != "" {
		if err := WriteHeader(headerPath, rs); err != nil {
			return err
		}
	}

	file, err := os.Create(dataPath)
	if err != nil {
		return fmt.Errorf("creating dataset file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := WriteRowSet(file, rs, includeGroupInfo); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing dataset file: %w", err)
	}
	return nil
}
