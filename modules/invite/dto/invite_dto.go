package dto

type InviteResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Status   string `json:"status"`
	SentTime string `json:"sentTime"`
	Message  string `json:"message,omitempty"`
}

type InviteListResponse struct {
	Invites []InviteResponse `json:"invites"`
	Total   int              `json:"total"`
}
