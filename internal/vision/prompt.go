package vision

// extractionPrompt is the fixed instruction sent with every challan photo.
// The remote Apps Script and the derivation transform both depend on this
// exact shape, so the wording is part of the system contract and must not
// drift casually.
const extractionPrompt = `Please analyze this challan/invoice image and extract the following information in JSON format:

1. Challan Information:
   - challan_number (Job ID from the image)
   - vendor_name (Name of Vendor/Party)
   - date (date from the challan)

2. Table Data (extract all rows from any tables):
   For each row, extract:
   - description (Description of goods/Item)
   - weight_sent (Weight sent)
   - weight_received (Weight received - if empty, use "0")
   - number_of_bags (No. of bags)
   - plating_color (Plating color)

Please return the data in this exact JSON structure:
{
    "challan_info": {
        "challan_number": "",
        "vendor_name": "",
        "date": ""
    },
    "table_data": [
        {
            "description": "",
            "weight_sent": "",
            "weight_received": "",
            "number_of_bags": "",
            "plating_color": ""
        }
    ]
}

Important notes:
- If weight_received field is empty or not visible, use "0"
- Extract all visible rows from any tables in the image
- If any field is not visible or available, use an empty string ""

Return only the JSON, no additional text.`
