package recipes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sandbankhq/sandbank"
)

// stateScripts drives the fake platform: each resource steps through its
// collection's states on successive fetches and sticks at the last one.
var stateScripts = map[string][]string{
	"customers":              {"storing", "unverified", "verified"},
	"accounts":               {"storing", "created"},
	"deposit_addresses":      {"storing", "created"},
	"deposit_bank_accounts":  {"storing", "created"},
	"identity_verifications": {"storing", "completed"},
	"workflows":              {"storing", "completed"},
	"external_bank_accounts": {"storing", "unverified", "completed"},
	"external_wallets":       {"storing", "completed"},
	"trades":                 {"storing", "settling"},
	"transfers":              {"storing", "completed"},
	"counterparties":         {"storing", "unverified", "verified"},
}

type fakeResource struct {
	collection string
	payload    map[string]any
	states     []string
	fetched    int
}

// fakePlatform is an in-memory platform API. POST creates a resource in
// its first scripted state; each GET advances one state.
type fakePlatform struct {
	mu                sync.Mutex
	seq               int
	resources         map[string]*fakeResource
	posts             map[string][]map[string]any
	failVerifications bool
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		resources: make(map[string]*fakeResource),
		posts:     make(map[string][]map[string]any),
	}
}

func (p *fakePlatform) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/"), "/")
	collection := parts[0]

	switch {
	case r.Method == http.MethodPost && len(parts) == 1:
		payload := map[string]any{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p.posts[collection] = append(p.posts[collection], payload)

		p.seq++
		created := make(map[string]any, len(payload)+2)
		for k, v := range payload {
			created[k] = v
		}
		created["guid"] = fmt.Sprintf("%s-%d", collection, p.seq)

		// quotes are priced synchronously: the side the caller left open
		// comes back filled (1:1 in the sandbox)
		if collection == "quotes" {
			deliver, _ := created["deliver_amount"].(float64)
			receive, _ := created["receive_amount"].(float64)
			if deliver == 0 {
				created["deliver_amount"] = receive
			}
			if receive == 0 {
				created["receive_amount"] = deliver
			}
		}

		if collection != "quotes" {
			res := &fakeResource{collection: collection, payload: created, states: stateScripts[collection]}
			created["state"] = res.states[0]
			p.resources[created["guid"].(string)] = res
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)

	case r.Method == http.MethodGet && len(parts) == 2:
		res, ok := p.resources[parts[1]]
		if !ok {
			http.Error(w, `{"error_message":"not found"}`, http.StatusNotFound)
			return
		}
		if res.fetched < len(res.states)-1 {
			res.fetched++
		}
		state := res.states[res.fetched]
		res.payload["state"] = state
		p.decorate(res, state)
		_ = json.NewEncoder(w).Encode(res.payload)

	default:
		http.Error(w, `{"error_message":"bad request"}`, http.StatusBadRequest)
	}
}

// decorate fills in the output fields a resource exposes once it settles.
func (p *fakePlatform) decorate(res *fakeResource, state string) {
	switch res.collection {
	case "identity_verifications":
		res.payload["persona_inquiry_id"] = "inq-" + res.payload["guid"].(string)
		if state == "completed" {
			outcome := sandbank.OutcomePassed
			if p.failVerifications {
				outcome = sandbank.OutcomeFailed
			}
			res.payload["outcome"] = outcome
		}
	case "workflows":
		if state == "completed" {
			res.payload["plaid_link_token"] = "link-token-123"
		}
	case "deposit_addresses":
		if state == "created" {
			res.payload["address"] = "0xfeedface"
		}
	case "deposit_bank_accounts":
		if state == "created" {
			res.payload["unique_memo_id"] = "memo-1"
			res.payload["routing_details"] = []map[string]string{
				{"routing_number_type": "ABA", "routing_number": "021000021"},
			}
		}
	case "accounts":
		if state == "created" {
			res.payload["platform_balance"] = 10_000
			res.payload["platform_available"] = 10_000
		}
	}
}

// seedAccount registers a platform account so balance re-fetches find it.
func (p *fakePlatform) seedAccount(guid string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resources[guid] = &fakeResource{
		collection: "accounts",
		payload:    map[string]any{"guid": guid},
		states:     stateScripts["accounts"],
	}
}

// lastPost returns the most recent payload POSTed to a collection.
func (p *fakePlatform) lastPost(t *testing.T, collection string) map[string]any {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	posts := p.posts[collection]
	if len(posts) == 0 {
		t.Fatalf("no POSTs recorded for %s", collection)
	}
	return posts[len(posts)-1]
}

func newRecipeEnv(t *testing.T) (*fakePlatform, *sandbank.Client) {
	t.Helper()
	platform := newFakePlatform()
	server := httptest.NewServer(platform)
	t.Cleanup(server.Close)

	client, err := sandbank.New("",
		sandbank.WithAPIURL(server.URL),
		sandbank.WithTokenURL(server.URL+"/oauth/token"),
		sandbank.WithHTTPClient(server.Client()),
		sandbank.WithToken("test-token"),
		sandbank.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		sandbank.WithWaitInterval(time.Millisecond),
		sandbank.WithWaitAttempts(10),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(client.Close)
	return platform, client
}

// checkParticipants asserts the single source and destination participant
// attached to a posted transfer.
func checkParticipants(t *testing.T, posted map[string]any, src, dst sandbank.TransferParticipant) {
	t.Helper()
	sources, _ := posted["source_participants"].([]any)
	destinations, _ := posted["destination_participants"].([]any)
	if len(sources) != 1 || len(destinations) != 1 {
		t.Fatalf("participants = %d source / %d destination, want 1/1", len(sources), len(destinations))
	}
	for _, check := range []struct {
		name string
		got  map[string]any
		want sandbank.TransferParticipant
	}{
		{"source", sources[0].(map[string]any), src},
		{"destination", destinations[0].(map[string]any), dst},
	} {
		if check.got["type"] != check.want.Type {
			t.Errorf("%s participant type = %v, want %s", check.name, check.got["type"], check.want.Type)
		}
		if check.got["guid"] != check.want.GUID {
			t.Errorf("%s participant guid = %v, want %s", check.name, check.got["guid"], check.want.GUID)
		}
		if check.got["amount"] != float64(check.want.Amount) {
			t.Errorf("%s participant amount = %v, want %d", check.name, check.got["amount"], check.want.Amount)
		}
	}
}

// stubLinker plays the part of a completed Plaid Link session.
type stubLinker struct{}

func (stubLinker) OnSuccess(context.Context) (string, string, error) {
	return "public-sandbox-token", "plaid-account-1", nil
}

func TestCreateIndividualCustomer(t *testing.T) {
	platform, client := newRecipeEnv(t)

	customer, err := CreateIndividualCustomer(context.Background(), client)
	if err != nil {
		t.Fatalf("CreateIndividualCustomer() error = %v", err)
	}
	if customer.State != sandbank.StateVerified {
		t.Errorf("state = %q, want verified", customer.State)
	}

	verification := platform.lastPost(t, "identity_verifications")
	if verification["type"] != sandbank.VerificationTypeKYC {
		t.Errorf("verification type = %v, want kyc", verification["type"])
	}
	if verification["method"] != sandbank.VerificationMethodIDAndSelfie {
		t.Errorf("verification method = %v, want id_and_selfie", verification["method"])
	}
	if verification["customer_guid"] != customer.GUID {
		t.Errorf("verification customer_guid = %v, want %s", verification["customer_guid"], customer.GUID)
	}
}

func TestCreateIndividualCustomer_LogsPersonaInquiry(t *testing.T) {
	platform := newFakePlatform()
	server := httptest.NewServer(platform)
	t.Cleanup(server.Close)

	var logBuf bytes.Buffer
	client, err := sandbank.New("",
		sandbank.WithAPIURL(server.URL),
		sandbank.WithTokenURL(server.URL+"/oauth/token"),
		sandbank.WithHTTPClient(server.Client()),
		sandbank.WithToken("test-token"),
		sandbank.WithLogger(slog.New(slog.NewTextHandler(&logBuf, nil))),
		sandbank.WithWaitInterval(time.Millisecond),
		sandbank.WithWaitAttempts(10),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(client.Close)

	if _, err := CreateIndividualCustomer(context.Background(), client); err != nil {
		t.Fatalf("CreateIndividualCustomer() error = %v", err)
	}

	logged := logBuf.String()
	if !strings.Contains(logged, "persona_inquiry_id=inq-identity_verifications-") {
		t.Errorf("logs missing persona inquiry id, got:\n%s", logged)
	}
}

func TestCreateIndividualCustomer_VerificationFails(t *testing.T) {
	platform, client := newRecipeEnv(t)
	platform.failVerifications = true

	_, err := CreateIndividualCustomer(context.Background(), client)
	if !errors.Is(err, ErrVerificationFailed) {
		t.Errorf("error = %v, want ErrVerificationFailed", err)
	}
}

func TestCreateCustomerAccounts(t *testing.T) {
	_, client := newRecipeEnv(t)

	customer, err := CreateIndividualCustomer(context.Background(), client)
	if err != nil {
		t.Fatalf("CreateIndividualCustomer() error = %v", err)
	}

	accounts, err := CreateCustomerAccounts(context.Background(), client, customer)
	if err != nil {
		t.Fatalf("CreateCustomerAccounts() error = %v", err)
	}

	if accounts.Fiat.Asset != sandbank.AssetUSD || accounts.Fiat.State != sandbank.StateCreated {
		t.Errorf("fiat = %+v, want created USD account", accounts.Fiat)
	}
	if accounts.Trading.Asset != sandbank.AssetUSDC || accounts.Trading.State != sandbank.StateCreated {
		t.Errorf("trading = %+v, want created USDC account", accounts.Trading)
	}
	if accounts.DepositAddress.Address == "" {
		t.Error("deposit address has no address")
	}
	if len(accounts.DepositBankAccount.RoutingDetails) == 0 {
		t.Error("deposit bank account has no routing details")
	}
	if accounts.DepositBankAccount.UniqueMemoID == "" {
		t.Error("deposit bank account has no memo id")
	}
}

func TestCreateExternalBankAccount(t *testing.T) {
	platform, client := newRecipeEnv(t)
	customer := sandbank.Customer{GUID: "cust-1", State: sandbank.StateVerified}

	account, err := CreateExternalBankAccount(context.Background(), client, stubLinker{}, customer)
	if err != nil {
		t.Fatalf("CreateExternalBankAccount() error = %v", err)
	}
	if account.State != sandbank.StateCompleted {
		t.Errorf("state = %q, want completed", account.State)
	}

	posted := platform.lastPost(t, "external_bank_accounts")
	if posted["account_kind"] != sandbank.ExternalBankAccountKindPlaid {
		t.Errorf("account_kind = %v, want plaid", posted["account_kind"])
	}
	if posted["plaid_public_token"] != "public-sandbox-token" {
		t.Errorf("plaid_public_token = %v, want public-sandbox-token", posted["plaid_public_token"])
	}
	if posted["plaid_account_id"] != "plaid-account-1" {
		t.Errorf("plaid_account_id = %v, want plaid-account-1", posted["plaid_account_id"])
	}

	verification := platform.lastPost(t, "identity_verifications")
	if verification["type"] != sandbank.VerificationTypeBankAccount {
		t.Errorf("verification type = %v, want bank_account", verification["type"])
	}
	if verification["method"] != sandbank.VerificationMethodAccountOwnership {
		t.Errorf("verification method = %v, want account_ownership", verification["method"])
	}
}

func TestFundFiatAccount(t *testing.T) {
	platform, client := newRecipeEnv(t)
	customer := sandbank.Customer{GUID: "cust-1"}
	fiat := sandbank.Account{GUID: "accounts-99"}
	bankAccount := sandbank.ExternalBankAccount{GUID: "eba-1"}

	platform.seedAccount(fiat.GUID)

	account, err := FundFiatAccount(context.Background(), client, customer, fiat, bankAccount)
	if err != nil {
		t.Fatalf("FundFiatAccount() error = %v", err)
	}
	if account.PlatformBalance != 10_000 {
		t.Errorf("platform_balance = %d, want 10000", account.PlatformBalance)
	}

	quote := platform.lastPost(t, "quotes")
	if quote["product_type"] != sandbank.QuoteProductTypeFunding || quote["side"] != sandbank.QuoteSideDeposit {
		t.Errorf("quote = %v, want funding deposit", quote)
	}
	if quote["receive_amount"] != float64(10_000) {
		t.Errorf("receive_amount = %v, want 10000", quote["receive_amount"])
	}

	transfer := platform.lastPost(t, "transfers")
	if transfer["transfer_type"] != sandbank.TransferTypeFunding {
		t.Errorf("transfer_type = %v, want funding", transfer["transfer_type"])
	}
	if transfer["external_bank_account_guid"] != bankAccount.GUID {
		t.Errorf("external_bank_account_guid = %v, want %s", transfer["external_bank_account_guid"], bankAccount.GUID)
	}
	checkParticipants(t, transfer,
		sandbank.TransferParticipant{Type: sandbank.ParticipantTypeCustomer, GUID: customer.GUID, Amount: 10_000},
		sandbank.TransferParticipant{Type: sandbank.ParticipantTypeCustomer, GUID: customer.GUID, Amount: 10_000},
	)
}

func TestTradeForUSDC(t *testing.T) {
	platform, client := newRecipeEnv(t)
	customer := sandbank.Customer{GUID: "cust-1"}

	accounts, err := CreateCustomerAccounts(context.Background(), client, customer)
	if err != nil {
		t.Fatalf("CreateCustomerAccounts() error = %v", err)
	}

	trade, err := TradeForUSDC(context.Background(), client, customer, accounts.Fiat, accounts.Trading)
	if err != nil {
		t.Fatalf("TradeForUSDC() error = %v", err)
	}
	if trade.State != sandbank.StateSettling {
		t.Errorf("state = %q, want settling", trade.State)
	}

	quote := platform.lastPost(t, "quotes")
	if quote["symbol"] != sandbank.TradingPairUSDCUSD || quote["side"] != sandbank.QuoteSideBuy {
		t.Errorf("quote = %v, want USDC-USD buy", quote)
	}
	if quote["deliver_amount"] != float64(7_500) {
		t.Errorf("deliver_amount = %v, want 7500", quote["deliver_amount"])
	}
}

func TestCreateExternalWallet(t *testing.T) {
	platform, client := newRecipeEnv(t)
	customer := sandbank.Customer{GUID: "cust-1"}

	wallet, err := CreateExternalWallet(context.Background(), client, customer)
	if err != nil {
		t.Fatalf("CreateExternalWallet() error = %v", err)
	}
	if wallet.State != sandbank.StateCompleted {
		t.Errorf("state = %q, want completed", wallet.State)
	}

	posted := platform.lastPost(t, "external_wallets")
	address, _ := posted["address"].(string)
	if !strings.HasPrefix(address, "0x") || len(address) != 42 {
		t.Errorf("address = %q, want 0x-prefixed 20-byte hex", address)
	}
}

func TestOffRampUSDC(t *testing.T) {
	platform, client := newRecipeEnv(t)
	customer := sandbank.Customer{GUID: "cust-1"}
	trading := sandbank.Account{GUID: "trading-1"}
	wallet := sandbank.ExternalWallet{GUID: "wallet-1"}
	platform.seedAccount(trading.GUID)

	transfer, err := OffRampUSDC(context.Background(), client, customer, trading, wallet)
	if err != nil {
		t.Fatalf("OffRampUSDC() error = %v", err)
	}
	if transfer.State != sandbank.StateCompleted {
		t.Errorf("state = %q, want completed", transfer.State)
	}

	quote := platform.lastPost(t, "quotes")
	if quote["product_type"] != sandbank.QuoteProductTypeCryptoTransfer || quote["side"] != sandbank.QuoteSideWithdrawal {
		t.Errorf("quote = %v, want crypto_transfer withdrawal", quote)
	}
	if quote["receive_amount"] != float64(25_000_000) {
		t.Errorf("receive_amount = %v, want 25000000", quote["receive_amount"])
	}

	posted := platform.lastPost(t, "transfers")
	if posted["external_wallet_guid"] != wallet.GUID {
		t.Errorf("external_wallet_guid = %v, want %s", posted["external_wallet_guid"], wallet.GUID)
	}
	checkParticipants(t, posted,
		sandbank.TransferParticipant{Type: sandbank.ParticipantTypeCustomer, GUID: customer.GUID, Amount: 25_000_000},
		sandbank.TransferParticipant{Type: sandbank.ParticipantTypeCustomer, GUID: customer.GUID, Amount: 25_000_000},
	)
	if platform.resources[trading.GUID].fetched == 0 {
		t.Error("trading account was never re-fetched for its closing balance")
	}
}

func TestCounterpartyPayment(t *testing.T) {
	platform, client := newRecipeEnv(t)
	customer := sandbank.Customer{GUID: "cust-1"}
	trading := sandbank.Account{GUID: "trading-1"}
	counterparty := sandbank.Counterparty{GUID: "cp-1"}
	wallet := sandbank.ExternalWallet{GUID: "cp-wallet-1"}
	platform.seedAccount(trading.GUID)

	transfer, err := CounterpartyPayment(context.Background(), client, customer, trading, counterparty, wallet)
	if err != nil {
		t.Fatalf("CounterpartyPayment() error = %v", err)
	}
	if transfer.State != sandbank.StateCompleted {
		t.Errorf("state = %q, want completed", transfer.State)
	}

	posted := platform.lastPost(t, "transfers")
	if posted["external_wallet_guid"] != wallet.GUID {
		t.Errorf("external_wallet_guid = %v, want %s", posted["external_wallet_guid"], wallet.GUID)
	}
	checkParticipants(t, posted,
		sandbank.TransferParticipant{Type: sandbank.ParticipantTypeCustomer, GUID: customer.GUID, Amount: 25_000_000},
		sandbank.TransferParticipant{Type: sandbank.ParticipantTypeCounterparty, GUID: counterparty.GUID, Amount: 25_000_000},
	)
}

func TestOffRampUSD(t *testing.T) {
	platform, client := newRecipeEnv(t)
	customer := sandbank.Customer{GUID: "cust-1"}
	fiat := sandbank.Account{GUID: "fiat-1"}
	bankAccount := sandbank.ExternalBankAccount{GUID: "eba-1"}
	platform.seedAccount(fiat.GUID)

	transfer, err := OffRampUSD(context.Background(), client, customer, fiat, bankAccount)
	if err != nil {
		t.Fatalf("OffRampUSD() error = %v", err)
	}
	if transfer.State != sandbank.StateCompleted {
		t.Errorf("state = %q, want completed", transfer.State)
	}

	posted := platform.lastPost(t, "transfers")
	if posted["payment_rail"] != sandbank.PaymentRailRTP {
		t.Errorf("payment_rail = %v, want rtp", posted["payment_rail"])
	}
	checkParticipants(t, posted,
		sandbank.TransferParticipant{Type: sandbank.ParticipantTypeCustomer, GUID: customer.GUID, Amount: 1_500},
		sandbank.TransferParticipant{Type: sandbank.ParticipantTypeCustomer, GUID: customer.GUID, Amount: 1_500},
	)
	quote := platform.lastPost(t, "quotes")
	if quote["receive_amount"] != float64(1_500) {
		t.Errorf("receive_amount = %v, want 1500", quote["receive_amount"])
	}
}

func TestCreateCounterparty(t *testing.T) {
	platform, client := newRecipeEnv(t)
	customer := sandbank.Customer{GUID: "cust-1"}

	counterparty, err := CreateCounterparty(context.Background(), client, customer)
	if err != nil {
		t.Fatalf("CreateCounterparty() error = %v", err)
	}
	if counterparty.State != sandbank.StateVerified {
		t.Errorf("state = %q, want verified", counterparty.State)
	}
	if counterparty.Name.Full == "" {
		t.Error("counterparty has no name")
	}

	verification := platform.lastPost(t, "identity_verifications")
	if verification["type"] != sandbank.VerificationTypeCounterparty {
		t.Errorf("verification type = %v, want counterparty", verification["type"])
	}
	if verification["method"] != sandbank.VerificationMethodWatchlists {
		t.Errorf("verification method = %v, want watchlists", verification["method"])
	}
}

func TestCreateCounterpartyAccounts(t *testing.T) {
	platform, client := newRecipeEnv(t)
	counterparty := sandbank.Counterparty{GUID: "cp-1", Name: sandbank.Name{Full: "Acme Corp"}}

	accounts, err := CreateCounterpartyAccounts(context.Background(), client, counterparty)
	if err != nil {
		t.Fatalf("CreateCounterpartyAccounts() error = %v", err)
	}
	if accounts.Wallet.State != sandbank.StateCompleted {
		t.Errorf("wallet state = %q, want completed", accounts.Wallet.State)
	}
	if accounts.BankAccount.State != sandbank.StateCompleted {
		t.Errorf("bank account state = %q, want completed", accounts.BankAccount.State)
	}

	posted := platform.lastPost(t, "external_bank_accounts")
	if posted["account_kind"] != sandbank.ExternalBankAccountKindRawRoutingDetails {
		t.Errorf("account_kind = %v, want raw_routing_details", posted["account_kind"])
	}
	details, _ := posted["counterparty_bank_account"].(map[string]any)
	if details["routing_number"] != testRoutingNumber {
		t.Errorf("routing_number = %v, want %s", details["routing_number"], testRoutingNumber)
	}
	accountNumber, _ := details["account_number"].(string)
	if len(accountNumber) != 10 {
		t.Errorf("account_number = %q, want 10 digits", accountNumber)
	}
}

func TestP2PTransfer(t *testing.T) {
	platform, client := newRecipeEnv(t)
	sender := sandbank.Customer{GUID: "cust-a"}
	receiver := sandbank.Customer{GUID: "cust-b"}

	senderAccounts, err := CreateCustomerAccounts(context.Background(), client, sender)
	if err != nil {
		t.Fatalf("CreateCustomerAccounts() error = %v", err)
	}
	receiverAccounts, err := CreateCustomerAccounts(context.Background(), client, receiver)
	if err != nil {
		t.Fatalf("CreateCustomerAccounts() error = %v", err)
	}

	transfer, err := P2PTransfer(context.Background(), client, sender, senderAccounts.Fiat, receiver, receiverAccounts.Fiat)
	if err != nil {
		t.Fatalf("P2PTransfer() error = %v", err)
	}
	if transfer.State != sandbank.StateCompleted {
		t.Errorf("state = %q, want completed", transfer.State)
	}

	posted := platform.lastPost(t, "transfers")
	if posted["transfer_type"] != sandbank.TransferTypeBook {
		t.Errorf("transfer_type = %v, want book", posted["transfer_type"])
	}
	if posted["source_account_guid"] != senderAccounts.Fiat.GUID {
		t.Errorf("source_account_guid = %v, want %s", posted["source_account_guid"], senderAccounts.Fiat.GUID)
	}
	if posted["destination_account_guid"] != receiverAccounts.Fiat.GUID {
		t.Errorf("destination_account_guid = %v, want %s", posted["destination_account_guid"], receiverAccounts.Fiat.GUID)
	}
	checkParticipants(t, posted,
		sandbank.TransferParticipant{Type: sandbank.ParticipantTypeCustomer, GUID: sender.GUID, Amount: 500},
		sandbank.TransferParticipant{Type: sandbank.ParticipantTypeCustomer, GUID: receiver.GUID, Amount: 500},
	)
}
