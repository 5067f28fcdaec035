package metrics

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	VerdictMatch    = "match"
	VerdictDiverged = "diverged"
	VerdictSkipped  = "skipped"
)

// ExperimentRow. one solved subset of an experiment run. OracleCost is NaN when no oracle ran.
type ExperimentRow struct {
	ID            string
	Name          string
	N             int
	ExactCost     float64
	OracleCost    float64
	HeuristicCost float64
	NodesExpanded int64
	PruningCount  int64
	Elapsed       time.Duration
	Verdict       string
}

type Report struct {
	rows []ExperimentRow
}

func NewReport() *Report {
	return &Report{rows: make([]ExperimentRow, 0)}
}

func (r *Report) Add(row ExperimentRow) {
	r.rows = append(r.rows, row)
}

func (r *Report) GetRows() []ExperimentRow {
	return r.rows
}

// CountVerdict. number of rows with verdict v.
func (r *Report) CountVerdict(v string) int {
	c := 0
	for _, row := range r.rows {
		if row.Verdict == v {
			c++
		}
	}
	return c
}

/*
WriteToFile. whitespace separated text: a header line with the number of rows, then one line per row:

	id name n exactCost oracleCost heuristicCost nodesExpanded pruningCount elapsedNanos verdict

spaces in names are written as underscores.
*/
func (r *Report) WriteToFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	if _, err := fmt.Fprintf(w, "%d\n", len(r.rows)); err != nil {
		return err
	}
	for _, row := range r.rows {
		_, err := fmt.Fprintf(w, "%s %s %d %s %s %s %d %d %d %s\n", row.ID,
			strings.ReplaceAll(row.Name, " ", "_"), row.N,
			formatFloat(row.ExactCost), formatFloat(row.OracleCost), formatFloat(row.HeuristicCost),
			row.NodesExpanded, row.PruningCount, row.Elapsed.Nanoseconds(), row.Verdict)
		if err != nil {
			return err
		}
	}
	return nil
}

func ReadFromFile(filename string) (*Report, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	readLine := func() (string, error) {
		line, err := r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && len(line) > 0 {
			} else if err != nil {
				return "", err
			}
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	line, err := readLine()
	if err != nil {
		return nil, err
	}
	numRows, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}

	report := &Report{rows: make([]ExperimentRow, 0, numRows)}
	for i := 0; i < numRows; i++ {
		line, err = readLine()
		if err != nil {
			return nil, err
		}
		parts := fields(line)
		if len(parts) != 10 {
			return nil, fmt.Errorf("invalid format: row %d has %d fields", i, len(parts))
		}

		row := ExperimentRow{ID: parts[0], Name: parts[1], Verdict: parts[9]}
		if row.N, err = strconv.Atoi(parts[2]); err != nil {
			return nil, err
		}
		if row.ExactCost, err = strconv.ParseFloat(parts[3], 64); err != nil {
			return nil, err
		}
		if row.OracleCost, err = strconv.ParseFloat(parts[4], 64); err != nil {
			return nil, err
		}
		if row.HeuristicCost, err = strconv.ParseFloat(parts[5], 64); err != nil {
			return nil, err
		}
		if row.NodesExpanded, err = strconv.ParseInt(parts[6], 10, 64); err != nil {
			return nil, err
		}
		if row.PruningCount, err = strconv.ParseInt(parts[7], 10, 64); err != nil {
			return nil, err
		}
		nanos, err := strconv.ParseInt(parts[8], 10, 64)
		if err != nil {
			return nil, err
		}
		row.Elapsed = time.Duration(nanos)
		report.rows = append(report.rows, row)
	}
	return report, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fields(s string) []string {
	return strings.Fields(s)
}
