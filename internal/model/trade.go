package model

import "encoding/json"

// Trade is one fill from the Data API trade listing.
type Trade struct {
	Timestamp   int64
	Size        float64
	Price       float64
	ProxyWallet string
}

// UnmarshalJSON decodes a trade with tolerant scalar handling; a missing or
// unreadable timestamp decodes to zero.
func (t *Trade) UnmarshalJSON(data []byte) error {
	var raw struct {
		Timestamp   flexInt    `json:"timestamp"`
		Size        flexFloat  `json:"size"`
		Price       flexFloat  `json:"price"`
		ProxyWallet flexString `json:"proxyWallet"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = Trade{
		Timestamp:   int64(raw.Timestamp),
		Size:        float64(raw.Size),
		Price:       float64(raw.Price),
		ProxyWallet: string(raw.ProxyWallet),
	}
	return nil
}
