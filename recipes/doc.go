// Package recipes contains end-to-end demonstration flows against a
// banking-as-a-service sandbox: onboarding customers, opening accounts,
// linking external bank accounts, funding, trading, and moving value on
// and off the platform.
//
// Each recipe is a function over a [sandbank.Client]. Recipes create
// resources and then wait for them to settle with [sandbank.WaitForState],
// so a recipe returns only once its resources are usable by the next one.
package recipes
