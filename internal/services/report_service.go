package services

import (
	"bytes"
	"context"
	"fmt"

	"biobank-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReportService renders the printable chain-of-custody document that goes
// into the regulatory binder alongside the physical sample.
type ReportService struct {
	Samples SampleStore
	Ledger  LedgerStore
}

func NewReportService(samples SampleStore, ledger LedgerStore) *ReportService {
	return &ReportService{Samples: samples, Ledger: ledger}
}

// CustodyReportPDF builds a one-page PDF with the sample's identity and its
// full custody history in sequence order.
func (s *ReportService) CustodyReportPDF(ctx context.Context, sampleID string) ([]byte, error) {
	sample, err := s.Samples.GetSample(ctx, sampleID)
	if err != nil {
		return nil, err
	}
	events, err := s.Ledger.History(ctx, sampleID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Chain of Custody Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Chain of Custody Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	zone := "-"
	if sample.CurrentZoneID != nil {
		zone = *sample.CurrentZoneID
	}
	for _, line := range [][2]string{
		{"Barcode", sample.Barcode},
		{"Sample ID", sample.ID},
		{"Type", sample.TypeCode},
		{"Storage requirement", sample.StorageClass},
		{"Current state", sample.State},
		{"Current zone", zone},
		{"Registered", timeutil.Format(sample.CreatedAt, timeutil.DisplayLayout)},
	} {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 6, line[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, line[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(15, 7, "Seq", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 7, "Event", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 7, "From", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 7, "To", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 7, "Actor", "1", 0, "C", false, 0, "")
	pdf.CellFormat(0, 7, "Timestamp", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, e := range events {
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", e.SequenceNo), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, e.EventType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, e.FromValue, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, e.ToValue, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, e.Actor, "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, timeutil.Format(e.CreatedAt, timeutil.DateTimeLayout), "1", 1, "L", false, 0, "")
	}
	if len(events) == 0 {
		pdf.CellFormat(0, 6, "No custody events recorded", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render custody report: %w", err)
	}
	return buf.Bytes(), nil
}
