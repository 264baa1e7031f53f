package dto

// SubscriberInput is one candidate row in a UI-driven bulk sync.
type SubscriberInput struct {
	SubscriptionID       string `json:"subscriptionId"`
	PlanName             string `json:"planName"`
	ProductName          string `json:"productName"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Status               string `json:"status"`
	CreatedDate          string `json:"createdDate"`
	CurrentPeriodEndDate string `json:"currentPeriodEndDate"`
}

type BulkUpsertRequest struct {
	Subscribers []SubscriberInput `json:"subscribers"`
}

type BulkUpsertResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

type SubscriberResponse struct {
	ID                   string `json:"id"`
	SubscriptionID       string `json:"subscriptionId"`
	PlanName             string `json:"planName,omitempty"`
	ProductName          string `json:"productName,omitempty"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone,omitempty"`
	Status               string `json:"status"`
	CreatedDate          string `json:"createdDate,omitempty"`
	CurrentPeriodEndDate string `json:"currentPeriodEndDate,omitempty"`
}

type SubscriberListResponse struct {
	Subscribers []SubscriberResponse `json:"subscribers"`
	Total       int                  `json:"total"`
}
