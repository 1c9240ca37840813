package gamedata

// ItemDef defines a consumable item loaded from JSON. A player's
// inventory holds copies of these as instances; consuming an item
// removes one instance and applies its effect once.
type ItemDef struct {
	ID          string         `json:"id"`          // Unique identifier (e.g., "health_potion")
	Name        string         `json:"name"`        // Display name
	Description string         `json:"description"` // Short blurb for the inventory menu
	Category    string         `json:"category"`    // "potion", "ether", etc.
	Effect      map[string]int `json:"effect"`      // Resource key -> magnitude, e.g. {"hp": 40}
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
