package paytech

// Wire-format structs for the PayTech REST API. Field names follow the
// provider's documentation, not ours.

type paymentRequestWire struct {
	ItemName    string `json:"item_name"`
	ItemPrice   string `json:"item_price"`
	Currency    string `json:"currency"`
	RefCommand  string `json:"ref_command"`
	CommandName string `json:"command_name"`
	Env         string `json:"env"`
	IPNURL      string `json:"ipn_url,omitempty"`
	SuccessURL  string `json:"success_url,omitempty"`
	CancelURL   string `json:"cancel_url,omitempty"`
	CustomField string `json:"custom_field,omitempty"`
}

type paymentResponseWire struct {
	Success     int    `json:"success"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
	Errors      string `json:"errors"`
	Message     string `json:"message"`
}

type statusResponseWire struct {
	Success int    `json:"success"`
	Status  string `json:"status"`
}

type refundRequestWire struct {
	Token  string `json:"token"`
	Amount string `json:"amount,omitempty"`
}

type refundResponseWire struct {
	Success  int    `json:"success"`
	RefundID string `json:"refund_id"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Errors   string `json:"errors"`
}
