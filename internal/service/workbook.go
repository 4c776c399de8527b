package service

import (
	"fmt"
	"math"
	"strings"

	"debtster-collections/internal/domain"

	"github.com/xuri/excelize/v2"
)

type column[T any] struct {
	Header string
	Value  func(T) any
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func datePtr(p *domain.Date) string {
	if p == nil {
		return ""
	}
	return p.String()
}

var debtorColumns = []column[domain.Debtor]{
	{"ID", func(d domain.Debtor) any { return d.ID }},
	{"Tax ID", func(d domain.Debtor) any { return d.TaxID }},
	{"Name", func(d domain.Debtor) any { return d.Name }},
	{"Address", func(d domain.Debtor) any { return str(d.Address) }},
	{"Phone", func(d domain.Debtor) any { return str(d.Phone) }},
	{"Email", func(d domain.Debtor) any { return str(d.Email) }},
	{"Created on", func(d domain.Debtor) any { return d.CreatedOn.String() }},
	{"Active", func(d domain.Debtor) any { return d.Active }},
}

var instrumentColumns = []column[domain.Instrument]{
	{"ID", func(i domain.Instrument) any { return i.ID }},
	{"Debtor ID", func(i domain.Instrument) any { return i.DebtorID }},
	{"Debtor", func(i domain.Instrument) any { return str(i.DebtorName) }},
	{"Debtor tax ID", func(i domain.Instrument) any { return str(i.DebtorTaxID) }},
	{"Type", func(i domain.Instrument) any { return i.Type }},
	{"Number", func(i domain.Instrument) any { return i.Number }},
	{"Amount", func(i domain.Instrument) any { return i.Amount }},
	{"Issue date", func(i domain.Instrument) any { return i.IssueDate.String() }},
	{"Due date", func(i domain.Instrument) any { return i.DueDate.String() }},
	{"Interest rate", func(i domain.Instrument) any { return i.InterestRate }},
	{"Accrued interest", func(i domain.Instrument) any { return i.AccruedInterest }},
	{"Status", func(i domain.Instrument) any { return string(i.Status) }},
}

var paymentColumns = []column[domain.Payment]{
	{"ID", func(p domain.Payment) any { return p.ID }},
	{"Instrument ID", func(p domain.Payment) any { return p.InstrumentID }},
	{"Payment date", func(p domain.Payment) any { return p.PaymentDate.String() }},
	{"Amount", func(p domain.Payment) any { return p.Amount }},
	{"Method", func(p domain.Payment) any { return str(p.Method) }},
	{"Receipt", func(p domain.Payment) any { return str(p.Receipt) }},
}

var processStageColumns = []column[domain.ProcessStage]{
	{"ID", func(s domain.ProcessStage) any { return s.ID }},
	{"Instrument ID", func(s domain.ProcessStage) any { return s.InstrumentID }},
	{"Stage", func(s domain.ProcessStage) any { return s.Stage }},
	{"Stage date", func(s domain.ProcessStage) any { return s.StageDate.String() }},
	{"Observations", func(s domain.ProcessStage) any { return str(s.Observations) }},
	{"Responsible", func(s domain.ProcessStage) any { return str(s.Responsible) }},
	{"Next action", func(s domain.ProcessStage) any { return datePtr(s.NextActionDate) }},
}

// sheetOrder is the canonical order of workbook sheets.
var sheetOrder = []string{"debtors", "instruments", "payments", "process_stages"}

func selectSheets(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return append([]string(nil), sheetOrder...), nil
	}

	want := make(map[string]bool, len(requested))
	for _, name := range requested {
		name = strings.ToLower(strings.TrimSpace(name))
		known := false
		for _, s := range sheetOrder {
			if s == name {
				known = true
				break
			}
		}
		if !known {
			return nil, domain.ValidationError("sheets",
				fmt.Sprintf("unknown sheet %q, must be one of: %s", name, strings.Join(sheetOrder, ", ")))
		}
		want[name] = true
	}

	out := make([]string, 0, len(want))
	for _, s := range sheetOrder {
		if want[s] {
			out = append(out, s)
		}
	}
	return out, nil
}

func rowCount(d *Dump, sheet string) int {
	switch sheet {
	case "debtors":
		return len(d.Debtors)
	case "instruments":
		return len(d.Instruments)
	case "payments":
		return len(d.Payments)
	case "process_stages":
		return len(d.ProcessStages)
	}
	return 0
}

// writeSheet fills sheet with a header row and one row per record, calling
// done after every chunk of rows.
func writeSheet[T any](f *excelize.File, sheet string, cols []column[T], rows []T, done func(n int)) error {
	for i, col := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return err
		}
	}

	const chunkSize = 1000
	for r, row := range rows {
		for c, col := range cols {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, col.Value(row)); err != nil {
				return err
			}
		}
		if (r+1)%chunkSize == 0 || r == len(rows)-1 {
			done(r%chunkSize + 1)
		}
	}
	return nil
}

// buildWorkbook renders the selected sheets into an XLSX file. progress
// receives values in [0, 95).
func buildWorkbook(d *Dump, sheets []string, progress func(float64)) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	total := 0
	for _, s := range sheets {
		total += rowCount(d, s)
	}
	written := 0
	done := func(n int) {
		written += n
		if total == 0 {
			return
		}
		p := math.Round(float64(written) / float64(total) * 100)
		if p >= 95 {
			p = 94
		}
		progress(p)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}

		var err error
		switch sheet {
		case "debtors":
			err = writeSheet(f, sheet, debtorColumns, d.Debtors, done)
		case "instruments":
			err = writeSheet(f, sheet, instrumentColumns, d.Instruments, done)
		case "payments":
			err = writeSheet(f, sheet, paymentColumns, d.Payments, done)
		case "process_stages":
			err = writeSheet(f, sheet, processStageColumns, d.ProcessStages, done)
		}
		if err != nil {
			return nil, fmt.Errorf("write sheet %s: %w", sheet, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
