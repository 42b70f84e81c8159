// Package derive turns an extracted challan document into the flat row list
// the spreadsheet endpoint expects. The transform is a pure function of the
// document and a clock reading; callers pass the clock explicitly so the
// output is reproducible in tests.
package derive

import (
	"strconv"
	"strings"
	"time"

	"github.com/chirag14252/challan-app/internal/model"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// Rows derives the ordered spreadsheet rows for doc at the given processing
// time. Line items with an empty description contribute no row; if nothing
// qualifies, a single fallback row carrying the challan header is returned,
// so a submission always contains at least one row.
func Rows(doc *model.ExtractedDocument, at time.Time) []model.OutputRow {
	date := at.Format(dateLayout)
	ts := at.Format(timestampLayout)

	var rows []model.OutputRow
	for _, item := range doc.TableData {
		description := strings.TrimSpace(item.Description)
		if description == "" {
			continue
		}

		received := strings.TrimSpace(item.WeightReceived)
		if received == "" {
			received = "0"
		}

		rows = append(rows, model.OutputRow{
			ChallanNumber:  doc.ChallanInfo.ChallanNumber,
			VendorName:     doc.ChallanInfo.VendorName,
			Description:    description,
			WeightSent:     item.WeightSent,
			WeightReceived: received,
			Status:         status(received),
			Difference:     difference(item.WeightSent, received),
			NumberOfBags:   item.NumberOfBags,
			PlatingColor:   item.PlatingColor,
			Date:           date,
			Timestamp:      ts,
		})
	}

	if len(rows) == 0 {
		rows = append(rows, model.OutputRow{
			ChallanNumber:  doc.ChallanInfo.ChallanNumber,
			VendorName:     doc.ChallanInfo.VendorName,
			WeightReceived: "0",
			Status:         model.StatusNotReceived,
			Difference:     "0",
			Date:           date,
			Timestamp:      ts,
		})
	}

	return rows
}

// status reports Received only for a weight that parses to a positive
// number. "0" and unparseable text both mean the goods did not come back.
func status(received string) string {
	n, err := strconv.ParseFloat(received, 64)
	if err == nil && n > 0 {
		return model.StatusReceived
	}
	return model.StatusNotReceived
}

// difference renders weight sent minus weight received as the shortest
// decimal text that round-trips. An empty weight counts as 0, but if either
// weight is present and unparseable the whole difference degrades to "0".
func difference(sent, received string) string {
	sentN, err := parseWeight(sent)
	if err != nil {
		return "0"
	}
	receivedN, err := parseWeight(received)
	if err != nil {
		return "0"
	}
	return strconv.FormatFloat(sentN-receivedN, 'f', -1, 64)
}

func parseWeight(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
