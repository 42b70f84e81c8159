package model

// Sheet column headers, in the order the remote Apps Script appends them.
var RowHeaders = []string{
	"Job ID",
	"Party/Vendor",
	"Item",
	"Weight Sent",
	"Weight Received",
	"Status",
	"Remarks",
	"Difference",
	"No. of Bags",
	"Plating Colour",
	"Photo Links",
	"Date",
	"Processing Timestamp",
}

// Row status values. Received means a positive weight came back.
const (
	StatusReceived    = "Received"
	StatusNotReceived = "Not Received"
)

// OutputRow is one spreadsheet row derived from a challan line item.
// The remote endpoint is order-dependent, not key-dependent: rows travel
// over the wire as plain 13-element string arrays (see Columns).
// Remarks and PhotoLink are always empty; Date and Timestamp reflect the
// moment of processing, not the date printed on the challan.
type OutputRow struct {
	ChallanNumber  string
	VendorName     string
	Description    string
	WeightSent     string
	WeightReceived string
	Status         string
	Remarks        string
	Difference     string
	NumberOfBags   string
	PlatingColor   string
	PhotoLink      string
	Date           string
	Timestamp      string
}

// Columns returns the row as an ordered 13-element slice matching RowHeaders.
func (r OutputRow) Columns() []string {
	return []string{
		r.ChallanNumber,
		r.VendorName,
		r.Description,
		r.WeightSent,
		r.WeightReceived,
		r.Status,
		r.Remarks,
		r.Difference,
		r.NumberOfBags,
		r.PlatingColor,
		r.PhotoLink,
		r.Date,
		r.Timestamp,
	}
}
