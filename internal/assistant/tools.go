package assistant

import "encoding/json"

// ToolCall is a single function invocation requested by the model.
type ToolCall struct {
	ID   string
	Name string
	Args json.RawMessage
}

// ToolResult pairs a tool call with its locally computed result. Result must
// be JSON-serializable.
type ToolResult struct {
	CallID string
	Name   string
	Result any
}

// ModelTurn is one model response: final text, or one or more tool calls
// that must be executed and fed back.
type ModelTurn struct {
	Text  string
	Calls []ToolCall
}

// ToolDefinition declares one callable tool to the model. Parameters is a
// JSON schema object; nil means the tool takes no arguments.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Tool names understood by the dispatcher.
const (
	toolCountProperties = "count_properties"
	toolListProperties  = "list_properties"
	toolViewCart        = "view_cart"
	toolAddToCart       = "add_to_cart"
	toolRemoveFromCart  = "remove_from_cart"
	toolClearCart       = "clear_cart"
	toolSortByPrice     = "sort_by_price"
	toolPriceRange      = "filter_price_range"
	toolComparePrices   = "compare_prices"
	toolFindByAgent     = "find_by_agent"
	toolFindByAmenities = "find_by_amenities"
	toolPriceExtremes   = "price_extremes"
	toolAveragePrice    = "average_price"
	toolSimilar         = "similar_properties"
	toolSearch          = "search_properties"
	toolRecentlyListed  = "recently_listed"
	toolListViewings    = "list_viewings"
	toolSchedule        = "schedule_viewing"
	toolClearViewings   = "clear_viewings"
	toolTranslate       = "translate"
	toolNegotiate       = "negotiation_help"
)

// Declarations returns the fixed tool set exposed to the model.
func Declarations() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        toolCountProperties,
			Description: "Get the total number of properties available in the catalog.",
		},
		{
			Name:        toolListProperties,
			Description: "Get all properties with their IDs, names, prices and agents.",
		},
		{
			Name:        toolViewCart,
			Description: "View the properties currently in the user's cart, with the running total.",
		},
		{
			Name:        toolAddToCart,
			Description: "Add one or more properties to the cart by property ID.",
			Parameters: schemaObject(map[string]any{
				"propertyIds": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "integer"},
					"description": "IDs of the properties to add.",
				},
			}, "propertyIds"),
		},
		{
			Name:        toolRemoveFromCart,
			Description: "Remove one property from the cart by its ID.",
			Parameters: schemaObject(map[string]any{
				"propertyId": map[string]any{"type": "integer", "description": "The ID of the property to remove."},
			}, "propertyId"),
		},
		{
			Name:        toolClearCart,
			Description: "Clear all properties from the user's cart.",
		},
		{
			Name:        toolSortByPrice,
			Description: "Sort all properties by price.",
			Parameters: schemaObject(map[string]any{
				"ascending": map[string]any{"type": "boolean", "description": "True for ascending order, false for descending."},
			}, "ascending"),
		},
		{
			Name:        toolPriceRange,
			Description: "Find properties within a price range in KES, bounds inclusive.",
			Parameters: schemaObject(map[string]any{
				"minPrice": map[string]any{"type": "number", "description": "Minimum price in KES."},
				"maxPrice": map[string]any{"type": "number", "description": "Maximum price in KES."},
			}, "minPrice", "maxPrice"),
		},
		{
			Name:        toolComparePrices,
			Description: "Compare prices between two or more named properties.",
			Parameters: schemaObject(map[string]any{
				"propertyNames": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Names of the properties to compare.",
				},
			}, "propertyNames"),
		},
		{
			Name:        toolFindByAgent,
			Description: "Find properties by agent name or agency name.",
			Parameters: schemaObject(map[string]any{
				"query": map[string]any{"type": "string", "description": "Agent or agency name to search for."},
			}, "query"),
		},
		{
			Name:        toolFindByAmenities,
			Description: "Find properties that have all of the given amenities.",
			Parameters: schemaObject(map[string]any{
				"amenities": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Amenities the property must have.",
				},
			}, "amenities"),
		},
		{
			Name:        toolPriceExtremes,
			Description: "Get the cheapest and most expensive properties available.",
		},
		{
			Name:        toolAveragePrice,
			Description: "Calculate the average price of all properties in KES.",
		},
		{
			Name:        toolSimilar,
			Description: "Suggest properties similar to a given property.",
			Parameters: schemaObject(map[string]any{
				"propertyId": map[string]any{"type": "integer", "description": "ID of the reference property."},
			}, "propertyId"),
		},
		{
			Name:        toolSearch,
			Description: "Search properties by location, bedrooms, price range and amenities.",
			Parameters: schemaObject(map[string]any{
				"location":  map[string]any{"type": "string", "description": "Area, city or subcounty to search in."},
				"bedrooms":  map[string]any{"type": "integer", "description": "Number of bedrooms."},
				"minPrice":  map[string]any{"type": "number", "description": "Minimum price in KES."},
				"maxPrice":  map[string]any{"type": "number", "description": "Maximum price in KES."},
				"amenities": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Desired amenities or features like 'modern' or 'pool'."},
			}, "location"),
		},
		{
			Name:        toolRecentlyListed,
			Description: "Get the most recently listed properties.",
			Parameters: schemaObject(map[string]any{
				"limit": map[string]any{"type": "integer", "description": "Maximum number of properties to return. Defaults to 5."},
			}),
		},
		{
			Name:        toolListViewings,
			Description: "Get all scheduled property viewings.",
		},
		{
			Name:        toolSchedule,
			Description: "Schedule a property viewing appointment. Uses the property name since users rarely know IDs.",
			Parameters: schemaObject(map[string]any{
				"propertyName": map[string]any{"type": "string", "description": "Name of the property to view."},
				"day":          map[string]any{"type": "string", "description": "Day of the week for the viewing."},
				"time":         map[string]any{"type": "string", "description": "Time for the viewing, e.g. 10:00."},
			}, "propertyName", "day", "time"),
		},
		{
			Name:        toolClearViewings,
			Description: "Cancel all scheduled viewings.",
		},
		{
			Name:        toolTranslate,
			Description: "Translate text between Swahili and English.",
			Parameters: schemaObject(map[string]any{
				"text":   map[string]any{"type": "string", "description": "Text to translate."},
				"source": map[string]any{"type": "string", "description": "Source language code. Defaults to sw."},
				"target": map[string]any{"type": "string", "description": "Target language code. Defaults to en."},
			}, "text"),
		},
		{
			Name:        toolNegotiate,
			Description: "Provide negotiation assistance for a property by comparing prices and suggesting negotiation points.",
			Parameters: schemaObject(map[string]any{
				"propertyName": map[string]any{"type": "string", "description": "The name of the property to negotiate for."},
				"targetPrice":  map[string]any{"type": "number", "description": "The desired target price in KES."},
			}, "propertyName"),
		},
	}
}

// schemaObject builds a JSON schema object with the given properties and
// required field names.
func schemaObject(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
