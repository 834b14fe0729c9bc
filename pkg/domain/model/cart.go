package model

// Cart holds requested quantities per product code in insertion order.
type Cart struct {
	quantities map[string]int
	codes      []string
}

func NewCart() *Cart {
	return &Cart{quantities: make(map[string]int)}
}

func (c *Cart) Add(code string, quantity int) {
	if _, ok := c.quantities[code]; !ok {
		c.codes = append(c.codes, code)
	}
	c.quantities[code] += quantity
}

// Remove undoes a previous Add. The entry disappears once its quantity drops to zero.
func (c *Cart) Remove(code string, quantity int) {
	current, ok := c.quantities[code]
	if !ok {
		return
	}
	if current > quantity {
		c.quantities[code] = current - quantity
		return
	}
	delete(c.quantities, code)
	for i, existing := range c.codes {
		if existing == code {
			c.codes = append(c.codes[:i], c.codes[i+1:]...)
			break
		}
	}
}

func (c *Cart) Quantity(code string) int {
	return c.quantities[code]
}

func (c *Cart) Codes() []string {
	codes := make([]string, len(c.codes))
	copy(codes, c.codes)
	return codes
}

func (c *Cart) IsEmpty() bool {
	return len(c.codes) == 0
}
