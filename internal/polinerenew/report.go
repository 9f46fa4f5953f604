// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package polinerenew

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/googleapis/polinerenew/internal/renewal"
	"github.com/googleapis/polinerenew/internal/yaml"
	"github.com/jedib0t/go-pretty/v6/table"
)

func writeReport(w io.Writer, format string, report *renewal.Report) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case outputYAML:
		data, err = yaml.Marshal(report)
	case outputText:
		data, err = encodeReportAsText(report)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func encodeReportAsText(report *renewal.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Updated %d of %d PO lines.\n", len(report.Updated), report.Total)
	if len(report.Failed) > 0 {
		fmt.Fprintf(&buf, "\nFailed to update %d PO lines:\n", len(report.Failed))
		t := table.NewWriter()
		t.SetOutputMirror(&buf)
		t.AppendHeader(table.Row{"PO Line", "Status", "Detail"})
		for _, f := range report.Failed {
			status := "-"
			if f.StatusCode != 0 {
				status = fmt.Sprint(f.StatusCode)
			}
			detail := f.Body
			if detail == "" {
				detail = f.Error
			}
			t.AppendRow(table.Row{f.ID, status, detail})
		}
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 3, WidthMax: 80},
		})
		style := table.StyleLight
		style.Options.DrawBorder = false
		t.SetStyle(style)
		t.Render()
	}
	if len(report.Skipped) > 0 {
		fmt.Fprintf(&buf, "\nSkipped %d PO lines: %s\n", len(report.Skipped), strings.Join(report.Skipped, ", "))
	}
	return buf.Bytes(), nil
}
