package model

import "encoding/json"

// Market is one Gamma market record from the listing endpoint.
type Market struct {
	ID          string
	Slug        string
	ConditionID string
	Volume      float64
	Question    string
}

// UnmarshalJSON decodes a market, tolerating Gamma's mixed scalar encodings
// and both conditionId spellings.
func (m *Market) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID            flexString `json:"id"`
		Slug          string     `json:"slug"`
		ConditionID   string     `json:"conditionId"`
		ConditionIDv2 string     `json:"condition_id"`
		Volume        flexFloat  `json:"volume"`
		Question      string     `json:"question"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	conditionID := raw.ConditionID
	if conditionID == "" {
		conditionID = raw.ConditionIDv2
	}

	*m = Market{
		ID:          string(raw.ID),
		Slug:        raw.Slug,
		ConditionID: conditionID,
		Volume:      float64(raw.Volume),
		Question:    raw.Question,
	}
	return nil
}
