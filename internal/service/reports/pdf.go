package reports

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/domain"
)

// ManifestPDF renders the manifest as a printable A4 passenger list for
// boarding staff.
func (s *Service) ManifestPDF(routeID string) ([]byte, error) {
	manifest, err := s.RouteManifest(routeID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Passenger Manifest "+manifest.RouteID, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "TwendeBus Passenger Manifest", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("%s - %s (%s class)",
		manifest.Origin, manifest.Destination, manifest.BusClass), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Departure: %s    Route: %s    Sold: %d/%d",
		manifest.DepartureTime.Format(domain.TimeFormat), manifest.RouteID,
		len(manifest.Passengers), manifest.Capacity), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(15, 8, "Seat", "1", 0, "C", true, 0, "")
	pdf.CellFormat(80, 8, "Passenger", "1", 0, "L", true, 0, "")
	pdf.CellFormat(55, 8, "Ticket", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Boarded", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, p := range manifest.Passengers {
		boarded := "No"
		if p.Boarded {
			boarded = "Yes"
		}
		pdf.CellFormat(15, 8, fmt.Sprintf("%d", p.SeatNumber), "1", 0, "C", false, 0, "")
		pdf.CellFormat(80, 8, p.PassengerName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 8, p.TicketID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, boarded, "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}
