package ledger

// CartLine is one row of a cart: an item referenced by catalog name and the
// quantity the customer wants. Prices are not part of the cart; they are
// resolved from the catalog at settlement time.
type CartLine struct {
	ItemName string
	Quantity int
}

// Cart is the caller-owned shopping cart. The session building a sale adds
// and removes lines; the ledger only ever reads it.
type Cart struct {
	lines []CartLine
}

// Add appends a line, merging with an existing line of the same item.
func (c *Cart) Add(name string, quantity int) {
	for i := range c.lines {
		if c.lines[i].ItemName == name {
			c.lines[i].Quantity += quantity
			return
		}
	}
	c.lines = append(c.lines, CartLine{ItemName: name, Quantity: quantity})
}

// Remove drops the line for the given item, if present.
func (c *Cart) Remove(name string) {
	for i := range c.lines {
		if c.lines[i].ItemName == name {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }
