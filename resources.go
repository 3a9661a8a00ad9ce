package sandbank

import "time"

// Resource is any platform entity with a stable identifier and a lifecycle
// state. Every asynchronous resource the platform exposes implements it,
// which is what lets [WaitForState] poll them all uniformly: the waiter
// never interprets the state value, it only tests set membership.
type Resource interface {
	// Identifier returns the resource's stable, opaque identifier (a GUID).
	Identifier() string

	// CurrentState returns the last observed lifecycle state.
	CurrentState() string

	// ResourceKind returns the resource kind name used in logs and error
	// messages (e.g. "customer", "trade").
	ResourceKind() string
}

// Address is a postal address as the platform represents it.
type Address struct {
	Street      string `json:"street"`
	Street2     string `json:"street2,omitempty"`
	City        string `json:"city"`
	Subdivision string `json:"subdivision"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
}

// Name is a personal or business name. For businesses only Full is set.
type Name struct {
	Full string `json:"full"`
}

// Customer is an end user of the platform, either an individual or a
// business. Customers start in "storing", settle in "unverified", and move
// to "verified" once an identity verification passes.
type Customer struct {
	GUID      string    `json:"guid"`
	Type      string    `json:"type"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

func (c Customer) Identifier() string { return c.GUID }
func (c Customer) CurrentState() string { return c.State }
func (c Customer) ResourceKind() string { return "customer" }

// PostCustomer is the request payload for creating a customer.
type PostCustomer struct {
	Type string `json:"type"`
}

// Account is a ledger account holding a single asset for a bank or customer.
type Account struct {
	GUID              string `json:"guid"`
	Type              string `json:"type"`
	Asset             string `json:"asset"`
	Name              string `json:"name"`
	State             string `json:"state"`
	CustomerGUID      string `json:"customer_guid,omitempty"`
	PlatformBalance   int64  `json:"platform_balance"`
	PlatformAvailable int64  `json:"platform_available"`
}

func (a Account) Identifier() string { return a.GUID }
func (a Account) CurrentState() string { return a.State }
func (a Account) ResourceKind() string { return "account" }

// PostAccount is the request payload for creating an account.
type PostAccount struct {
	Type         string `json:"type"`
	Asset        string `json:"asset"`
	Name         string `json:"name"`
	CustomerGUID string `json:"customer_guid,omitempty"`
}

// DepositAddress is a crypto address customers can deposit into.
type DepositAddress struct {
	GUID        string `json:"guid"`
	AccountGUID string `json:"account_guid"`
	State       string `json:"state"`
	Address     string `json:"address,omitempty"`
	Tag         string `json:"tag,omitempty"`
}

func (d DepositAddress) Identifier() string { return d.GUID }
func (d DepositAddress) CurrentState() string { return d.State }
func (d DepositAddress) ResourceKind() string { return "deposit_address" }

// PostDepositAddress is the request payload for creating a deposit address.
type PostDepositAddress struct {
	AccountGUID string `json:"account_guid"`
}

// RoutingDetail describes how to route fiat deposits to an account.
type RoutingDetail struct {
	RoutingNumberType string `json:"routing_number_type"`
	RoutingNumber     string `json:"routing_number"`
}

// AccountDetail carries the account number for fiat deposits.
type AccountDetail struct {
	AccountNumber string `json:"account_number"`
}

// DepositBankAccount is a virtual bank account customers can wire fiat into.
type DepositBankAccount struct {
	GUID                string          `json:"guid"`
	AccountGUID         string          `json:"account_guid"`
	Type                string          `json:"type"`
	State               string          `json:"state"`
	UniqueMemoID        string          `json:"unique_memo_id,omitempty"`
	CounterpartyName    string          `json:"counterparty_name,omitempty"`
	CounterpartyAddress Address         `json:"counterparty_address,omitempty"`
	RoutingDetails      []RoutingDetail `json:"routing_details,omitempty"`
	AccountDetails      []AccountDetail `json:"account_details,omitempty"`
}

func (d DepositBankAccount) Identifier() string { return d.GUID }
func (d DepositBankAccount) CurrentState() string { return d.State }
func (d DepositBankAccount) ResourceKind() string { return "deposit_bank_account" }

// PostDepositBankAccount is the request payload for creating a deposit bank account.
type PostDepositBankAccount struct {
	Type        string `json:"type"`
	AccountGUID string `json:"account_guid"`
}

// IdentityVerification is a KYC/KYB or bank-account-ownership check. It
// settles in "completed" with an outcome of "passed" or "failed".
type IdentityVerification struct {
	GUID                    string `json:"guid"`
	Type                    string `json:"type"`
	Method                  string `json:"method"`
	State                   string `json:"state"`
	Outcome                 string `json:"outcome,omitempty"`
	CustomerGUID            string `json:"customer_guid,omitempty"`
	CounterpartyGUID        string `json:"counterparty_guid,omitempty"`
	ExternalBankAccountGUID string `json:"external_bank_account_guid,omitempty"`
	PersonaInquiryID        string `json:"persona_inquiry_id,omitempty"`
}

func (v IdentityVerification) Identifier() string { return v.GUID }
func (v IdentityVerification) CurrentState() string { return v.State }
func (v IdentityVerification) ResourceKind() string { return "identity_verification" }

// PostIdentityVerification is the request payload for creating an identity
// verification. Exactly one of CustomerGUID or CounterpartyGUID is set.
// Token carries the signed attestation for attested-method verifications.
type PostIdentityVerification struct {
	Type                    string   `json:"type"`
	Method                  string   `json:"method"`
	CustomerGUID            string   `json:"customer_guid,omitempty"`
	CounterpartyGUID        string   `json:"counterparty_guid,omitempty"`
	ExternalBankAccountGUID string   `json:"external_bank_account_guid,omitempty"`
	ExpectedBehaviours      []string `json:"expected_behaviours,omitempty"`
	Token                   string   `json:"token,omitempty"`
}

// Quote is a priced offer for a funding, trading, book or crypto transfer
// operation. Quote creation is synchronous; quotes are never waited on.
type Quote struct {
	GUID          string `json:"guid"`
	ProductType   string `json:"product_type"`
	CustomerGUID  string `json:"customer_guid"`
	Symbol        string `json:"symbol,omitempty"`
	Asset         string `json:"asset,omitempty"`
	Side          string `json:"side,omitempty"`
	DeliverAmount int64  `json:"deliver_amount"`
	ReceiveAmount int64  `json:"receive_amount"`
	Fee           int64  `json:"fee"`
}

// PostQuote is the request payload for creating a quote. Amounts are in the
// asset's base units (e.g. cents for USD). Only one of DeliverAmount or
// ReceiveAmount is set per quote.
type PostQuote struct {
	ProductType   string `json:"product_type"`
	CustomerGUID  string `json:"customer_guid"`
	Symbol        string `json:"symbol,omitempty"`
	Asset         string `json:"asset,omitempty"`
	Side          string `json:"side,omitempty"`
	DeliverAmount int64  `json:"deliver_amount,omitempty"`
	ReceiveAmount int64  `json:"receive_amount,omitempty"`
}

// Trade executes a trading quote. Trades settle asynchronously; "settling"
// is commonly treated as acceptable since funds are already committed.
type Trade struct {
	GUID          string `json:"guid"`
	QuoteGUID     string `json:"quote_guid"`
	Symbol        string `json:"symbol,omitempty"`
	Side          string `json:"side,omitempty"`
	State         string `json:"state"`
	DeliverAmount int64  `json:"deliver_amount"`
	ReceiveAmount int64  `json:"receive_amount"`
	Fee           int64  `json:"fee"`
}

func (t Trade) Identifier() string { return t.GUID }
func (t Trade) CurrentState() string { return t.State }
func (t Trade) ResourceKind() string { return "trade" }

// PostTrade is the request payload for executing a trade against a quote.
type PostTrade struct {
	QuoteGUID string `json:"quote_guid"`
}

// TransferParticipant identifies one side of a transfer and the amount it
// delivers or receives.
type TransferParticipant struct {
	Type   string `json:"type"`
	GUID   string `json:"guid"`
	Amount int64  `json:"amount"`
}

// Transfer moves value: fiat funding, crypto withdrawal, or book transfer
// between platform accounts.
type Transfer struct {
	GUID         string `json:"guid"`
	QuoteGUID    string `json:"quote_guid"`
	TransferType string `json:"transfer_type"`
	PaymentRail  string `json:"payment_rail,omitempty"`
	State        string `json:"state"`
	Asset        string `json:"asset,omitempty"`
	Amount       int64  `json:"amount"`
}

func (t Transfer) Identifier() string { return t.GUID }
func (t Transfer) CurrentState() string { return t.State }
func (t Transfer) ResourceKind() string { return "transfer" }

// PostTransfer is the request payload for executing a transfer against a
// quote. The optional GUID fields select the funding source/destination;
// which ones apply depends on the transfer type.
type PostTransfer struct {
	QuoteGUID               string                `json:"quote_guid"`
	TransferType            string                `json:"transfer_type"`
	SourceAccountGUID       string                `json:"source_account_guid,omitempty"`
	DestinationAccountGUID  string                `json:"destination_account_guid,omitempty"`
	ExternalWalletGUID      string                `json:"external_wallet_guid,omitempty"`
	ExternalBankAccountGUID string                `json:"external_bank_account_guid,omitempty"`
	PaymentRail             string                `json:"payment_rail,omitempty"`
	SourceParticipants      []TransferParticipant `json:"source_participants,omitempty"`
	DestinationParticipants []TransferParticipant `json:"destination_participants,omitempty"`
}

// ExternalWallet is a customer- or counterparty-owned crypto wallet outside
// the platform.
type ExternalWallet struct {
	GUID             string `json:"guid"`
	Name             string `json:"name"`
	Asset            string `json:"asset"`
	Address          string `json:"address"`
	Tag              string `json:"tag,omitempty"`
	State            string `json:"state"`
	CustomerGUID     string `json:"customer_guid,omitempty"`
	CounterpartyGUID string `json:"counterparty_guid,omitempty"`
}

func (w ExternalWallet) Identifier() string { return w.GUID }
func (w ExternalWallet) CurrentState() string { return w.State }
func (w ExternalWallet) ResourceKind() string { return "external_wallet" }

// PostExternalWallet is the request payload for registering an external wallet.
type PostExternalWallet struct {
	Name             string `json:"name"`
	Asset            string `json:"asset"`
	Address          string `json:"address"`
	Tag              string `json:"tag,omitempty"`
	CustomerGUID     string `json:"customer_guid,omitempty"`
	CounterpartyGUID string `json:"counterparty_guid,omitempty"`
}

// CounterpartyBankAccount carries raw routing details for an external bank
// account registered without an aggregator.
type CounterpartyBankAccount struct {
	RoutingNumberType string `json:"routing_number_type"`
	RoutingNumber     string `json:"routing_number"`
	AccountNumber     string `json:"account_number"`
}

// ExternalBankAccount is a bank account outside the platform, connected via
// Plaid or registered with raw routing details.
type ExternalBankAccount struct {
	GUID             string `json:"guid"`
	Name             string `json:"name"`
	AccountKind      string `json:"account_kind"`
	State            string `json:"state"`
	CustomerGUID     string `json:"customer_guid,omitempty"`
	CounterpartyGUID string `json:"counterparty_guid,omitempty"`
	PlaidAccountID   string `json:"plaid_account_id,omitempty"`
}

func (b ExternalBankAccount) Identifier() string { return b.GUID }
func (b ExternalBankAccount) CurrentState() string { return b.State }
func (b ExternalBankAccount) ResourceKind() string { return "external_bank_account" }

// PostExternalBankAccount is the request payload for connecting an external
// bank account. Plaid-kind accounts set the Plaid fields; raw-kind accounts
// set CounterpartyBankAccount.
type PostExternalBankAccount struct {
	Name                    string                   `json:"name"`
	AccountKind             string                   `json:"account_kind"`
	CustomerGUID            string                   `json:"customer_guid,omitempty"`
	CounterpartyGUID        string                   `json:"counterparty_guid,omitempty"`
	PlaidPublicToken        string                   `json:"plaid_public_token,omitempty"`
	PlaidAccountID          string                   `json:"plaid_account_id,omitempty"`
	CounterpartyBankAccount *CounterpartyBankAccount `json:"counterparty_bank_account,omitempty"`
}

// Workflow drives an interactive third-party integration, currently Plaid
// Link token creation. Completed workflows expose the link token.
type Workflow struct {
	GUID           string `json:"guid"`
	Type           string `json:"type"`
	Kind           string `json:"kind"`
	State          string `json:"state"`
	CustomerGUID   string `json:"customer_guid,omitempty"`
	PlaidLinkToken string `json:"plaid_link_token,omitempty"`
}

func (w Workflow) Identifier() string { return w.GUID }
func (w Workflow) CurrentState() string { return w.State }
func (w Workflow) ResourceKind() string { return "workflow" }

// PostWorkflow is the request payload for starting a workflow.
type PostWorkflow struct {
	Type                  string `json:"type"`
	Kind                  string `json:"kind"`
	CustomerGUID          string `json:"customer_guid"`
	Language              string `json:"language,omitempty"`
	LinkCustomizationName string `json:"link_customization_name,omitempty"`
}

// Alias is an alternative name a counterparty does business under.
type Alias struct {
	Full string `json:"full"`
}

// Counterparty is a third party a customer transacts with. Counterparties
// go through the same unverified/verified lifecycle as customers.
type Counterparty struct {
	GUID         string  `json:"guid"`
	Type         string  `json:"type"`
	State        string  `json:"state"`
	CustomerGUID string  `json:"customer_guid"`
	Name         Name    `json:"name"`
	Aliases      []Alias `json:"aliases,omitempty"`
	Address      Address `json:"address"`
}

func (c Counterparty) Identifier() string { return c.GUID }
func (c Counterparty) CurrentState() string { return c.State }
func (c Counterparty) ResourceKind() string { return "counterparty" }

// PostCounterparty is the request payload for creating a counterparty.
type PostCounterparty struct {
	Type         string  `json:"type"`
	CustomerGUID string  `json:"customer_guid"`
	Name         Name    `json:"name"`
	Aliases      []Alias `json:"aliases,omitempty"`
	Address      Address `json:"address"`
}
