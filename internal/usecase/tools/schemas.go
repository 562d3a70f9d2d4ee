package tools

// JSON Schema definitions advertised to the model. Filter fields mirror
// the structured filter accepted by the search endpoint.
const (
	searchRentalsSchema = `{
		"type": "object",
		"properties": {
			"query": {
				"type": "string",
				"description": "Free-text description of what to look for, e.g. 'bright loft near the canals'."
			},
			"filters": {
				"type": "object",
				"properties": {
					"property_type":    {"type": "string", "description": "Exact property type, e.g. 'Apartment', 'Loft'."},
					"room_type":        {"type": "string", "description": "Exact room type, e.g. 'Entire home/apt', 'Private room'."},
					"country":          {"type": "string"},
					"market":           {"type": "string", "description": "City or market name, e.g. 'Amsterdam'."},
					"min_price":        {"type": "number", "minimum": 0},
					"max_price":        {"type": "number", "minimum": 0},
					"min_bedrooms":     {"type": "integer", "minimum": 0},
					"min_accommodates": {"type": "integer", "minimum": 0},
					"superhost_only":   {"type": "boolean"}
				}
			},
			"limit": {
				"type": "integer",
				"minimum": 1,
				"maximum": 100,
				"description": "Maximum results to return, default 10."
			}
		},
		"required": ["query"]
	}`

	propertyDetailsSchema = `{
		"type": "object",
		"properties": {
			"listing_id": {
				"type": "string",
				"description": "Listing identifier, as returned by search_rentals."
			}
		},
		"required": ["listing_id"]
	}`

	savedRentalsSchema = `{
		"type": "object",
		"properties": {
			"include_details": {
				"type": "boolean",
				"description": "When true, each saved listing is returned with its full record instead of just the id."
			}
		}
	}`
)
