// Package sandbank provides a Go SDK for driving a banking-as-a-service
// sandbox platform: creating customers, verifying identity, opening
// accounts, funding them, trading assets, and moving money between parties.
//
// The SDK is designed around two pieces:
//
//   - A [Client] exposing one create/get method pair per platform resource
//     (customer, account, trade, transfer, identity verification, and so on).
//   - A generic [WaitForState] poller that blocks until a resource reaches
//     one of a set of acceptable lifecycle states, bounded by an attempt
//     budget. Nearly every platform operation is asynchronous, so almost
//     every flow is "create, then wait".
//
// # Quick Start
//
// Create a client, authenticate, and wait for a customer to settle:
//
//	client, err := sandbank.New("sandbank.dev",
//	    sandbank.WithClientCredentials(clientID, clientSecret),
//	)
//	if err != nil {
//	    slog.Error("failed to create client", "error", err)
//	    os.Exit(1)
//	}
//	if err := client.Authenticate(ctx); err != nil {
//	    slog.Error("failed to authenticate", "error", err)
//	    os.Exit(1)
//	}
//
//	customer, err := client.CreateCustomer(ctx, sandbank.PostCustomer{Type: sandbank.CustomerTypeIndividual})
//	if err != nil {
//	    // handle error
//	}
//	customer, err = sandbank.WaitForState(ctx, client.GetCustomer, customer,
//	    []string{sandbank.StateUnverified}, client.WaitOptions()...)
//
// # Waiting on Resources
//
// [WaitForState] treats every resource as an opaque state space: it
// re-fetches the resource at a fixed interval until its state is in the
// caller's acceptance set or the attempt budget is exhausted. On
// exhaustion it returns a [*StateTimeoutError] carrying the resource kind,
// identifier, and last observed state. Errors raised by the fetch itself
// propagate immediately and are never retried or wrapped.
//
// # Recipes
//
// The recipes package composes these primitives into the end-to-end flows
// a platform integrator performs: KYC'd customer creation, account opening,
// fiat funding, on/off-ramping, P2P transfers, and counterparty payments.
// See the recipes package and cmd/sandbank for the full demo sequence.
package sandbank
