package vision

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/chirag14252/challan-app/internal/model"
)

// parseDocument isolates and decodes the JSON object embedded in the model's
// response text. Models sometimes wrap the JSON in explanatory prose or a
// markdown fence, so the candidate payload is everything between the first
// '{' and the last '}'.
func parseDocument(text string) (*model.ExtractedDocument, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &Error{Kind: KindNoJSONFound, RawResponse: text}
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil, &Error{Kind: KindMalformedJSON, RawResponse: text, Err: err}
	}

	return coerceDocument(raw), nil
}

// coerceDocument maps the decoded object onto ExtractedDocument on a
// best-effort basis: absent fields become empty strings and stray numbers
// become their decimal text. Strict schema validation would reject exactly
// the sloppy-but-usable responses this tool exists to handle.
func coerceDocument(raw map[string]any) *model.ExtractedDocument {
	doc := &model.ExtractedDocument{}

	if info, ok := raw["challan_info"].(map[string]any); ok {
		doc.ChallanInfo = model.ChallanInfo{
			ChallanNumber: asString(info["challan_number"]),
			VendorName:    asString(info["vendor_name"]),
			Date:          asString(info["date"]),
		}
	}

	items, ok := raw["table_data"].([]any)
	if !ok {
		return doc
	}
	for _, entry := range items {
		row, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		doc.TableData = append(doc.TableData, model.LineItem{
			Description:    asString(row["description"]),
			WeightSent:     asString(row["weight_sent"]),
			WeightReceived: asString(row["weight_received"]),
			NumberOfBags:   asString(row["number_of_bags"]),
			PlatingColor:   asString(row["plating_color"]),
		})
	}
	return doc
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
