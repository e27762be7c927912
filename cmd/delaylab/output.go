package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"
)

const (
	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"
)

// report is a header plus rows of float columns.
type report struct {
	columns []string
	rows    [][]float64
}

// formatValue prints six decimals, the precision of the original delay reports.
func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func (r report) write(w io.Writer, format string) error {
	switch format {
	case formatCSV:
		return r.writeCSV(w)
	case formatJSON:
		return r.writeJSON(w)
	default:
		return r.writeTable(w)
	}
}

func (r report) writeTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for i, c := range r.columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, c)
	}
	fmt.Fprintln(tw, "\t")
	for _, row := range r.rows {
		for i, v := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, formatValue(v))
		}
		fmt.Fprintln(tw, "\t")
	}
	return tw.Flush()
}

func (r report) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.columns); err != nil {
		return err
	}
	for _, row := range r.rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = formatValue(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeJSON emits one object per row with keys in column order;
// NaN (no completed packets) becomes null.
func (r report) writeJSON(w io.Writer) error {
	out := make([]json.RawMessage, 0, len(r.rows))
	for _, row := range r.rows {
		obj, err := r.rowObject(row)
		if err != nil {
			return err
		}
		out = append(out, obj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (r report) rowObject(row []float64) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range row {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.columns[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
			continue
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
