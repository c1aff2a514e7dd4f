package model

import "encoding/json"

// Tag is one Gamma tag record.
type Tag struct {
	ID    string
	Label string
	Slug  string
}

// UnmarshalJSON decodes a tag; ids arrive as strings or numbers.
func (t *Tag) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    flexString `json:"id"`
		Label string     `json:"label"`
		Slug  string     `json:"slug"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = Tag{ID: string(raw.ID), Label: raw.Label, Slug: raw.Slug}
	return nil
}
