package mpesa

type TopUpRequest struct {
	ReceiverMSISDN string
	Amount         int64
}

type topUpPayload struct {
	SenderMSISDN   string `json:"senderMsisdn"`
	Amount         string `json:"amount"`
	ServicePin     string `json:"servicePin"`
	ReceiverMSISDN string `json:"receiverMsisdn"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}
