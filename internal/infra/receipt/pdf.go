package receipt

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"vehicle-rental/internal/domain/money"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/queries"

	"github.com/phpdave11/gofpdf"
)

const dateLayout = "02 Jan 2006 15:04 MST"

// PDFRenderer lays out a one-page booking receipt.
type PDFRenderer struct {
	currency string
	loc      *time.Location
}

func NewPDFRenderer(currency string, loc *time.Location) *PDFRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return &PDFRenderer{currency: currency, loc: loc}
}

func (r *PDFRenderer) Render(b *queries.BookingView) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	r.line(pdf, "Booking ID", b.ID.String())
	r.line(pdf, "Issued", b.CreatedAt.In(r.loc).Format(dateLayout))
	r.line(pdf, "Customer", fmt.Sprintf("%s <%s>", b.Username, b.UserEmail))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Vehicle")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	r.line(pdf, "Name", b.VehicleName)
	r.line(pdf, "Make", strings.TrimSpace(b.VehicleBrand+" "+b.VehicleModel))
	r.line(pdf, "Type", b.VehicleType)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rental")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	r.line(pdf, "Pick-up", b.StartDate.In(r.loc).Format(dateLayout))
	r.line(pdf, "Return", b.EndDate.In(r.loc).Format(dateLayout))
	r.line(pdf, "Pick-up at", b.PickupLocation)
	r.line(pdf, "Return at", b.ReturnLocation)
	r.line(pdf, "Status", b.Status)
	r.line(pdf, "Payment", b.PaymentStatus)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s %s", r.currency, money.FromCents(b.TotalAmountCents).String()))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "The total was fixed when the booking was made and is not affected by later price changes.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errs.Wrap(err, "write receipt pdf")
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) line(pdf *gofpdf.Fpdf, label, value string) {
	if value == "" {
		value = "-"
	}
	pdf.CellFormat(35, 7, label+":", "", 0, "L", false, 0, "")
	pdf.Cell(0, 7, value)
	pdf.Ln(7)
}
