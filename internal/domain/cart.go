package domain

// CartLine is a door snapshot plus the selected quantity. A cart holds
// at most one line per door ID; adding the same door again bumps the
// quantity instead of appending.
type CartLine struct {
	Door
	Quantity        int           `json:"quantity"`
	TotalPrice      int64         `json:"totalPrice"`
	SelectedVariant *ColorVariant `json:"selectedVariant,omitempty"`
}
