package model

// ChallanInfo is the header block of a delivery note: the job identifier,
// the vendor the goods were sent to, and the date printed on the note.
// All fields are free-form text exactly as read off the photograph.
type ChallanInfo struct {
	ChallanNumber string `json:"challan_number"`
	VendorName    string `json:"vendor_name"`
	Date          string `json:"date"`
}

// LineItem is one row of the goods table found on the challan.
// Weights stay textual; they are only interpreted numerically during
// row derivation, where parse failures degrade to defaults.
type LineItem struct {
	Description    string `json:"description"`
	WeightSent     string `json:"weight_sent"`
	WeightReceived string `json:"weight_received"`
	NumberOfBags   string `json:"number_of_bags"`
	PlatingColor   string `json:"plating_color"`
}

// ExtractedDocument is the structured result of one vision extraction call.
// It is treated as immutable once produced: derivation reads it and builds
// new rows, and it is never persisted server-side. Between the extract and
// submit actions the document travels with the client, so concurrent
// sessions cannot observe each other's results.
type ExtractedDocument struct {
	ChallanInfo ChallanInfo `json:"challan_info"`
	TableData   []LineItem  `json:"table_data"`
}
