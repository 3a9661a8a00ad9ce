package sandbank

// Resource lifecycle states observed across the platform. Each resource
// kind uses its own subset of this vocabulary; the waiter only compares
// values for set membership and attaches no meaning to any of them.
const (
	StateStoring    = "storing"
	StateCreated    = "created"
	StatePending    = "pending"
	StateCompleted  = "completed"
	StateSettling   = "settling"
	StateWaiting    = "waiting"
	StateUnverified = "unverified"
	StateVerified   = "verified"
)

// Identity verification outcomes.
const (
	OutcomePassed = "passed"
	OutcomeFailed = "failed"
)

// Customer and counterparty types.
const (
	CustomerTypeIndividual = "individual"
	CustomerTypeBusiness   = "business"

	CounterpartyTypeIndividual = "individual"
	CounterpartyTypeBusiness   = "business"
)

// Identity verification types and methods.
const (
	VerificationTypeKYC          = "kyc"
	VerificationTypeBankAccount  = "bank_account"
	VerificationTypeCounterparty = "counterparty"

	VerificationMethodIDAndSelfie      = "id_and_selfie"
	VerificationMethodAccountOwnership = "account_ownership"
	VerificationMethodWatchlists       = "watchlists"
	VerificationMethodAttested         = "attested"

	// ExpectedBehaviourPassedImmediately instructs the sandbox to skip the
	// interactive identity flow and settle the verification as passed.
	ExpectedBehaviourPassedImmediately = "passed_immediately"
)

// Account types.
const (
	AccountTypeFiat    = "fiat"
	AccountTypeTrading = "trading"

	DepositBankAccountTypeMain = "main"
)

// Quote product types and sides.
const (
	QuoteProductTypeFunding        = "funding"
	QuoteProductTypeTrading        = "trading"
	QuoteProductTypeCryptoTransfer = "crypto_transfer"
	QuoteProductTypeBook           = "book_transfer"

	QuoteSideDeposit    = "deposit"
	QuoteSideWithdrawal = "withdrawal"
	QuoteSideBuy        = "buy"
)

// Transfer types and participant types.
const (
	TransferTypeFunding = "funding"
	TransferTypeCrypto  = "crypto"
	TransferTypeBook    = "book"

	ParticipantTypeCustomer     = "customer"
	ParticipantTypeCounterparty = "counterparty"

	PaymentRailRTP = "rtp"
)

// Workflow types and kinds.
const (
	WorkflowTypePlaid           = "plaid"
	WorkflowKindLinkTokenCreate = "link_token_create"
)

// External bank account kinds and routing detail types.
const (
	ExternalBankAccountKindPlaid             = "plaid"
	ExternalBankAccountKindRawRoutingDetails = "raw_routing_details"

	RoutingNumberTypeABA = "ABA"
)

// Assets and trading pairs used by the demo flows.
const (
	AssetUSD  = "USD"
	AssetUSDC = "USDC"

	TradingPairUSDCUSD = "USDC-USD"
)

// Country codes.
const (
	CountryCodeUSA    = "US"
	CountryCodeCanada = "CA"
)
