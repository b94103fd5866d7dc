package project

// Draft is the in-progress input of the create flow.
type Draft struct {
	Name         string        `json:"name"`
	APIKey       string        `json:"api_key"`
	Integrations []Integration `json:"integrations"`
}

// NewDraft returns an empty draft with the default integration toggles.
func NewDraft() Draft {
	return Draft{Integrations: Catalog()}
}

// Ready reports whether the draft can be submitted.
func (d Draft) Ready() bool {
	return d.Name != "" && d.APIKey != ""
}

// Toggle flips one integration and returns the updated draft.
// The receiver's toggle slice is left untouched.
func (d Draft) Toggle(name IntegrationName) (Draft, error) {
	idx := -1
	for i, in := range d.Integrations {
		if in.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		if catalogIndex(name) < 0 {
			return d, ErrUnknownIntegration
		}
		// Drafts loaded without a full toggle set get the defaults back.
		d.Integrations = mergeDefaults(d.Integrations)
		return d.Toggle(name)
	}

	next := make([]Integration, len(d.Integrations))
	copy(next, d.Integrations)
	next[idx].Enabled = !next[idx].Enabled
	d.Integrations = next
	return d, nil
}

// Enabled reports the toggle state for name.
func (d Draft) Enabled(name IntegrationName) bool {
	for _, in := range d.Integrations {
		if in.Name == name {
			return in.Enabled
		}
	}
	return false
}

func mergeDefaults(current []Integration) []Integration {
	out := Catalog()
	for i := range out {
		for _, in := range current {
			if in.Name == out[i].Name {
				out[i].Enabled = in.Enabled
			}
		}
	}
	return out
}
