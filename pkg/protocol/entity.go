package protocol

// Entity is a stored record in the world model: a composite (Kind, ID)
// identity plus a bag of typed properties. The bag always carries "state";
// "location" and "description" are optional; everything else is kind-
// specific extra data (experiment parameters, sensor readings, positioning
// fields, or — for the round-bottom flask — the structured container
// record that doubles as its state).
type Entity struct {
	Kind       EntityKind     `json:"type"`
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties"`
}

// EntityUpdate is a tagged record a simulator emits on the log channel or
// as part of a Result. It carries only the properties the simulator wants
// to change — apply_updates merges them into the stored entity rather than
// replacing it.
type EntityUpdate struct {
	Type       EntityKind     `json:"type"`
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties"`
}

// State reads the "state" property as a string. Returns "" if absent or of
// a different shape (e.g. the flask's structured state record — use
// FlaskStateOf for that).
func (e Entity) State() string {
	s, _ := e.Properties["state"].(string)
	return s
}

// Location reads the optional "location" property.
func (e Entity) Location() string {
	loc, _ := e.Properties["location"].(string)
	return loc
}

// Description reads the optional free-text "description" property.
func (e Entity) Description() string {
	d, _ := e.Properties["description"].(string)
	return d
}

// FlaskState is the round-bottom flask's structured state record: {
// content_state, has_lid, lid_state, substance? }. Unlike every other kind,
// the flask's "state" property holds this record rather than a plain
// string enum (see spec §3 and §9 "Open question").
type FlaskState struct {
	ContentState string `json:"content_state"`
	HasLid       bool   `json:"has_lid"`
	LidState     string `json:"lid_state,omitempty"`
	Substance    string `json:"substance,omitempty"`
}

// AsMap renders the flask state as the map[string]any shape stored under
// the "state" property, so it round-trips through JSON the same way a
// value built directly as a map would.
func (f FlaskState) AsMap() map[string]any {
	m := map[string]any{
		"content_state": f.ContentState,
		"has_lid":       f.HasLid,
	}
	if f.LidState != "" {
		m["lid_state"] = f.LidState
	}
	if f.Substance != "" {
		m["substance"] = f.Substance
	}
	return m
}

// FlaskStateOf extracts the flask's structured state record from an entity,
// if present and shaped as expected.
func FlaskStateOf(e Entity) (FlaskState, bool) {
	raw, ok := e.Properties["state"]
	if !ok {
		return FlaskState{}, false
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return FlaskState{}, false
	}
	fs := FlaskState{}
	if v, ok := m["content_state"].(string); ok {
		fs.ContentState = v
	}
	if v, ok := m["has_lid"].(bool); ok {
		fs.HasLid = v
	}
	if v, ok := m["lid_state"].(string); ok {
		fs.LidState = v
	}
	if v, ok := m["substance"].(string); ok {
		fs.Substance = v
	}
	return fs, true
}
