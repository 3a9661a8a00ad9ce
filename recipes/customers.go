package recipes

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandbankhq/sandbank"
)

// ErrVerificationFailed reports an identity verification that completed
// with an outcome other than "passed".
var ErrVerificationFailed = errors.New("identity verification failed")

// CreateIndividualCustomer onboards an individual customer: it creates the
// customer, runs a KYC identity verification through the sandbox's
// passed-immediately path, and waits until the customer is verified.
func CreateIndividualCustomer(ctx context.Context, c *sandbank.Client) (sandbank.Customer, error) {
	customer, err := c.CreateCustomer(ctx, sandbank.PostCustomer{Type: sandbank.CustomerTypeIndividual})
	if err != nil {
		return sandbank.Customer{}, err
	}
	customer, err = sandbank.WaitForState(ctx, c.GetCustomer, customer,
		[]string{sandbank.StateUnverified}, c.WaitOptions()...)
	if err != nil {
		return sandbank.Customer{}, err
	}

	verification, err := c.CreateIdentityVerification(ctx, sandbank.PostIdentityVerification{
		Type:               sandbank.VerificationTypeKYC,
		Method:             sandbank.VerificationMethodIDAndSelfie,
		CustomerGUID:       customer.GUID,
		ExpectedBehaviours: []string{sandbank.ExpectedBehaviourPassedImmediately},
	})
	if err != nil {
		return sandbank.Customer{}, err
	}

	// The Persona inquiry id is assigned as soon as the verification is
	// registered; surface it so an operator can follow the inquiry in the
	// Persona dashboard while the verification runs.
	verification, err = c.GetIdentityVerification(ctx, verification.GUID)
	if err != nil {
		return sandbank.Customer{}, err
	}
	c.Logger().Info("identity verification started",
		"identity_verification_guid", verification.GUID,
		"persona_inquiry_id", verification.PersonaInquiryID,
	)

	verification, err = sandbank.WaitForState(ctx, c.GetIdentityVerification, verification,
		[]string{sandbank.StateCompleted}, c.WaitOptions()...)
	if err != nil {
		return sandbank.Customer{}, err
	}
	if verification.Outcome != sandbank.OutcomePassed {
		return sandbank.Customer{}, fmt.Errorf("%w: verification %s outcome %q",
			ErrVerificationFailed, verification.GUID, verification.Outcome)
	}

	customer, err = sandbank.WaitForState(ctx, c.GetCustomer, customer,
		[]string{sandbank.StateVerified}, c.WaitOptions()...)
	if err != nil {
		return sandbank.Customer{}, err
	}

	c.Logger().Info("customer verified", "customer_guid", customer.GUID)
	return customer, nil
}
