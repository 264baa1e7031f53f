package payments

import "encoding/json"

// ProductRef is a product reference that the provider returns either as a
// bare id or as an expanded object.
type ProductRef struct {
	ID   string
	Name string
}

func (p *ProductRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		p.ID = id
		p.Name = ""
		return nil
	}
	var obj struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	p.ID = obj.ID
	p.Name = obj.Name
	return nil
}

type Price struct {
	ID       string     `json:"id"`
	Nickname string     `json:"nickname"`
	Product  ProductRef `json:"product"`
}

type SubscriptionItem struct {
	Price Price `json:"price"`
}

// Subscription is one recurring billing agreement. Timestamps are epoch
// seconds, as the provider reports them.
type Subscription struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	Customer         string `json:"customer"`
	Created          int64  `json:"created"`
	CurrentPeriodEnd int64  `json:"current_period_end"`
	Items            struct {
		Data []SubscriptionItem `json:"data"`
	} `json:"items"`
}

// ProductID returns the product backing the subscription's first line item.
func (s Subscription) ProductID() string {
	if len(s.Items.Data) == 0 {
		return ""
	}
	return s.Items.Data[0].Price.Product.ID
}

type CustomerDetails struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CheckoutSession is a one-off purchase attempt against a payment link.
type CheckoutSession struct {
	ID              string           `json:"id"`
	PaymentStatus   string           `json:"payment_status"`
	Created         int64            `json:"created"`
	CustomerDetails *CustomerDetails `json:"customer_details"`
}

type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type PaymentLink struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// SubscriptionPage / SessionPage carry one page of a cursor-based listing.
// HasMore signals whether another page exists after the last item.
type SubscriptionPage struct {
	Data    []Subscription `json:"data"`
	HasMore bool           `json:"has_more"`
}

type SessionPage struct {
	Data    []CheckoutSession `json:"data"`
	HasMore bool              `json:"has_more"`
}

type CreatePriceParams struct {
	UnitAmount  int64
	Currency    string
	ProductName string
	Recurring   bool
}

type CreatePaymentLinkParams struct {
	PriceID     string
	Quantity    int
	RedirectURL string
}
