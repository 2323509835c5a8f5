package request

// SetCartLineRequest represents the set cart quantity request body.
// Quantity 0 removes the line; negative quantities are rejected.
type SetCartLineRequest struct {
	ItemName string `json:"item_name" binding:"required"`
	Quantity int    `json:"quantity"`
}
