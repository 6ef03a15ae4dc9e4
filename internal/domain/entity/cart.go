package entity

import "math"

// CartItem is a product reference plus a quantity. Quantity never drops
// below one; removal is a separate explicit action.
type CartItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Cart is an ordered sequence of items.
type Cart struct {
	Items []CartItem `json:"items"`
}

// CartPricing holds the pricing constants applied to a cart.
type CartPricing struct {
	FreeShippingOver float64
	ShippingFee      float64
	TaxRate          float64
}

// CartTotals is the priced view of a cart. Fields hold unrounded running
// totals; rounding happens at display time only.
type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Add appends the item, merging quantities when the product is already
// present. Quantities below one are treated as one.
func (c *Cart) Add(item CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity

			return
		}
	}
	c.Items = append(c.Items, item)
}

// Increment raises the quantity of the given product by one.
func (c *Cart) Increment(productID int64) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity++

			return true
		}
	}

	return false
}

// Decrement lowers the quantity by one, clamped at one. Decrementing at one
// is a no-op, not a removal.
func (c *Cart) Decrement(productID int64) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if c.Items[i].Quantity > 1 {
				c.Items[i].Quantity--
			}

			return true
		}
	}

	return false
}

// Remove drops the product from the cart entirely.
func (c *Cart) Remove(productID int64) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)

			return true
		}
	}

	return false
}

// Subtotal is the sum of unit price times quantity over all items.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, item := range c.Items {
		sum += item.Price * float64(item.Quantity)
	}

	return sum
}

// Totals prices the cart: shipping is waived above the threshold, tax is a
// flat rate on the subtotal.
func (c *Cart) Totals(pricing CartPricing) CartTotals {
	subtotal := c.Subtotal()

	shipping := pricing.ShippingFee
	if subtotal > pricing.FreeShippingOver {
		shipping = 0
	}

	tax := subtotal * pricing.TaxRate

	return CartTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// Round2 rounds to two decimals for display. Running totals stay unrounded
// to avoid compounding error.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
