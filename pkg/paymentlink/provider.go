// Package paymentlink is the boundary to the external bank-account
// linking and payment-initiation provider. The core never interprets
// payment internals beyond recording a reference and a status
// transition; everything here is pass-through.
package paymentlink

// LinkToken is the short-lived token the client uses to open the
// provider's account-linking flow.
type LinkToken struct {
	Token      string `json:"link_token"`
	Expiration string `json:"expiration"`
}

// ExchangeResult is the durable credential obtained for a linked
// account.
type ExchangeResult struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

// Payment identifies an initiated payment at the provider.
type Payment struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}

// Provider is the payment-link collaborator interface.
type Provider interface {
	CreateLinkToken(userID string) (*LinkToken, error)
	ExchangePublicToken(publicToken string) (*ExchangeResult, error)
	CreatePayment(accessToken string, amount float64, accountID, name, reference string) (*Payment, error)
	GetPaymentStatus(paymentID string) (*Payment, error)
}
