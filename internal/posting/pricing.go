package posting

import (
	"fmt"

	"github.com/jonathan/jobboard/internal/payment"
	"github.com/jonathan/jobboard/internal/types"
)

// Prices in minor currency units.
const (
	PriceBaseListing        int64 = 19900
	PriceFeaturedHomepage   int64 = 20000
	PriceFeaturedNewsletter int64 = 10000
)

// Cart is the ordered list of line items charged for one submission.
type Cart struct {
	Items []payment.LineItem
}

// Total sums the cart in minor units.
func (c Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		total += item.UnitAmount * qty
	}
	return total
}

// BuildCart always charges the base listing and adds one line per selected add-on.
func BuildCart(job types.JobFormData, pricing types.PricingOptions) Cart {
	items := []payment.LineItem{{
		Name:        "Job Listing (30 days)",
		Description: fmt.Sprintf("%s at %s", job.Title, job.CompanyName),
		UnitAmount:  PriceBaseListing,
		Quantity:    1,
	}}

	if pricing.IsFeatured {
		items = append(items, payment.LineItem{
			Name:        "Featured on Homepage (30 days)",
			Description: "Premium placement on the homepage",
			UnitAmount:  PriceFeaturedHomepage,
			Quantity:    1,
		})
	}

	if pricing.IsNewsletterFeatured {
		items = append(items, payment.LineItem{
			Name:        "Featured in Newsletter",
			Description: "Highlighted in our weekly email newsletter",
			UnitAmount:  PriceFeaturedNewsletter,
			Quantity:    1,
		})
	}

	return Cart{Items: items}
}
