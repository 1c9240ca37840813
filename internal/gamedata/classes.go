package gamedata

// ClassDef defines a playable class loaded from JSON.
type ClassDef struct {
	ID            string   `json:"id"`            // Unique identifier (e.g., "warrior")
	Name          string   `json:"name"`          // Display name (e.g., "Warrior")
	Description   string   `json:"description"`   // Short blurb for the class picker
	HP            int      `json:"hp"`            // Base hit points
	MP            int      `json:"mp"`            // Base mana points
	Attack        int      `json:"attack"`        // Base attack power
	Speed         int      `json:"speed"`         // Base speed
	Skills        []string `json:"skills"`        // Ordered skill IDs this class starts with
	StartingItems []string `json:"startingItems"` // Item IDs granted at creation
}

// ClassesFile represents the structure of classes.json.
type ClassesFile struct {
	Classes []ClassDef `json:"classes"`
}

// LoadClasses loads class definitions from the embedded classes.json file.
func LoadClasses() ([]ClassDef, error) {
	file, err := Load[ClassesFile]("classes.json")
	if err != nil {
		return nil, err
	}
	return file.Classes, nil
}

// MustLoadClasses loads class definitions, panicking on error.
func MustLoadClasses() []ClassDef {
	classes, err := LoadClasses()
	if err != nil {
		panic(err)
	}
	return classes
}
