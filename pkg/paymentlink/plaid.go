package paymentlink

import (
	"context"
	"fmt"
	"time"

	"github.com/plaid/plaid-go/v27/plaid"
)

// Supported Plaid environments. Anything else falls back to sandbox.
var plaidEnvironments = map[string]plaid.Environment{
	"sandbox":    plaid.Sandbox,
	"production": plaid.Production,
}

const requestTimeout = 15 * time.Second

// PlaidConfig holds the Plaid API credentials and environment.
type PlaidConfig struct {
	ClientID   string
	Secret     string
	Env        string // sandbox or production
	ClientName string // shown in the Link flow
}

// PlaidClient is the Plaid implementation of Provider.
type PlaidClient struct {
	cfg PlaidConfig
	env plaid.Environment
	api *plaid.APIClient
}

// NewPlaidClient creates a Plaid client. An unknown environment falls
// back to sandbox.
func NewPlaidClient(cfg PlaidConfig) *PlaidClient {
	env, ok := plaidEnvironments[cfg.Env]
	if !ok {
		env = plaid.Sandbox
	}
	return newPlaidClient(cfg, env)
}

func newPlaidClient(cfg PlaidConfig, env plaid.Environment) *PlaidClient {
	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)
	configuration.UseEnvironment(env)
	return &PlaidClient{
		cfg: cfg,
		env: env,
		api: plaid.NewAPIClient(configuration),
	}
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// plaidError unwraps the provider's structured error when present.
func plaidError(op string, err error) error {
	if apiErr, convErr := plaid.ToPlaidError(err); convErr == nil {
		return fmt.Errorf("%s failed: %s %s", op, apiErr.ErrorCode, apiErr.ErrorMessage)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}

// CreateLinkToken creates a Link token for the payment-initiation
// product bound to the given user.
func (c *PlaidClient) CreateLinkToken(userID string) (*LinkToken, error) {
	ctx, cancel := requestContext()
	defer cancel()

	user := plaid.LinkTokenCreateRequestUser{ClientUserId: userID}
	request := plaid.NewLinkTokenCreateRequest(c.cfg.ClientName, "en", []plaid.CountryCode{plaid.COUNTRYCODE_US}, user)
	request.SetProducts([]plaid.Products{plaid.PRODUCTS_PAYMENT_INITIATION})

	resp, _, err := c.api.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*request).Execute()
	if err != nil {
		return nil, plaidError("link token create", err)
	}
	return &LinkToken{
		Token:      resp.GetLinkToken(),
		Expiration: resp.GetExpiration().Format(time.RFC3339),
	}, nil
}

// ExchangePublicToken trades the public token from the Link flow for a
// durable access token.
func (c *PlaidClient) ExchangePublicToken(publicToken string) (*ExchangeResult, error) {
	ctx, cancel := requestContext()
	defer cancel()

	request := plaid.NewItemPublicTokenExchangeRequest(publicToken)
	resp, _, err := c.api.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*request).Execute()
	if err != nil {
		return nil, plaidError("public token exchange", err)
	}
	return &ExchangeResult{
		AccessToken: resp.GetAccessToken(),
		ItemID:      resp.GetItemId(),
	}, nil
}

// CreatePayment creates a payment recipient and initiates a payment to
// it, returning the provider's payment reference.
func (c *PlaidClient) CreatePayment(accessToken string, amount float64, accountID, name, reference string) (*Payment, error) {
	ctx, cancel := requestContext()
	defer cancel()

	recipientReq := plaid.NewPaymentInitiationRecipientCreateRequest(name)
	// In sandbox any valid IBAN is accepted.
	recipientReq.SetIban(accountID)
	recipientReq.SetAddress(*plaid.NewPaymentInitiationAddress(
		[]string{"123 Main St"}, "New York", "10001", "US",
	))
	recipient, _, err := c.api.PlaidApi.PaymentInitiationRecipientCreate(ctx).
		PaymentInitiationRecipientCreateRequest(*recipientReq).Execute()
	if err != nil {
		return nil, plaidError("recipient create", err)
	}

	paymentReq := plaid.NewPaymentInitiationPaymentCreateRequest(
		recipient.GetRecipientId(),
		reference,
		*plaid.NewPaymentAmount(plaid.PaymentAmountCurrency("USD"), amount),
	)
	payment, _, err := c.api.PlaidApi.PaymentInitiationPaymentCreate(ctx).
		PaymentInitiationPaymentCreateRequest(*paymentReq).Execute()
	if err != nil {
		return nil, plaidError("payment create", err)
	}
	return &Payment{
		PaymentID: payment.GetPaymentId(),
		Status:    string(payment.GetStatus()),
	}, nil
}

// GetPaymentStatus fetches the current status of a payment.
func (c *PlaidClient) GetPaymentStatus(paymentID string) (*Payment, error) {
	ctx, cancel := requestContext()
	defer cancel()

	request := plaid.NewPaymentInitiationPaymentGetRequest(paymentID)
	resp, _, err := c.api.PlaidApi.PaymentInitiationPaymentGet(ctx).
		PaymentInitiationPaymentGetRequest(*request).Execute()
	if err != nil {
		return nil, plaidError("payment get", err)
	}
	return &Payment{
		PaymentID: resp.GetPaymentId(),
		Status:    string(resp.GetStatus()),
	}, nil
}
