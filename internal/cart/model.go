package cart

import (
	"errors"
	"slices"
)

var ErrLineNotFound = errors.New("cart: no line for product")

type Line struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart holds at most one line per product. ID is empty until the cart is
// first persisted.
type Cart struct {
	ID    string `json:"id,omitempty"`
	Lines []Line `json:"lines"`
}

// New returns an unsaved cart holding a single unit of productID.
func New(productID string) Cart {
	return Cart{Lines: []Line{{ProductID: productID, Quantity: 1}}}
}

// Line returns the line for productID, if any.
func (c Cart) Line(productID string) (Line, bool) {
	i := c.index(productID)
	if i < 0 {
		return Line{}, false
	}
	return c.Lines[i], true
}

// Adjust changes the quantity for productID by one unit. Increasing a missing
// line creates it at quantity 1; decreasing a line to zero removes it.
// Decreasing a missing line returns ErrLineNotFound. The receiver is not
// modified.
func (c Cart) Adjust(productID string, increase bool) (Cart, error) {
	out := c.clone()

	i := out.index(productID)
	if i < 0 {
		if !increase {
			return c, ErrLineNotFound
		}
		out.Lines = append(out.Lines, Line{ProductID: productID, Quantity: 1})
		return out, nil
	}

	q := out.Lines[i].Quantity
	if increase {
		q++
	} else {
		q--
	}

	if q <= 0 {
		out.Lines = slices.Delete(out.Lines, i, i+1)
	} else {
		out.Lines[i] = Line{ProductID: productID, Quantity: q}
	}
	return out, nil
}

// Remove drops the line for productID regardless of its quantity.
func (c Cart) Remove(productID string) (Cart, error) {
	i := c.index(productID)
	if i < 0 {
		return c, ErrLineNotFound
	}
	out := c.clone()
	out.Lines = slices.Delete(out.Lines, i, i+1)
	return out, nil
}

func (c Cart) index(productID string) int {
	return slices.IndexFunc(c.Lines, func(l Line) bool { return l.ProductID == productID })
}

func (c Cart) clone() Cart {
	lines := make([]Line, len(c.Lines), len(c.Lines)+1)
	copy(lines, c.Lines)
	return Cart{ID: c.ID, Lines: lines}
}

// Normalize returns c with a non-nil line slice.
func (c Cart) Normalize() Cart {
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	return c
}
