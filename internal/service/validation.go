package service

import (
	"regexp"
	"strconv"

	"github.com/safepass/safepass/models"
)

// Validation is deliberately permissive about content and strict about
// presence: the vault stores what the user typed, it only refuses records
// it could not encrypt or display coherently.
var (
	domainPattern     = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?)+$`)
	cardNumberPattern = regexp.MustCompile(`^[0-9]{12,19}$`)
	cvvPattern        = regexp.MustCompile(`^[0-9]{3,4}$`)
)

func validateWebsite(cred models.WebsiteCredential) error {
	if cred.Label == "" {
		return invalidField("label", "label is required")
	}
	if cred.URL == "" {
		return invalidField("url", "url is required")
	}
	if cred.Domain == "" {
		return invalidField("domain", "domain is required")
	}
	if !domainPattern.MatchString(cred.Domain) {
		return invalidField("domain", "domain must look like example.com")
	}
	if cred.Username == "" {
		return invalidField("username", "username is required")
	}
	if cred.Password == "" {
		return invalidField("password", "password is required")
	}
	return nil
}

func validateCard(cred models.CardCredential) error {
	if cred.CardHolder == "" {
		return invalidField("card_holder", "card holder is required")
	}
	if cred.Number == "" {
		return invalidField("card_number", "card number is required")
	}
	if !cardNumberPattern.MatchString(cred.Number) {
		return invalidField("card_number", "card number must be 12-19 digits")
	}
	month, err := strconv.Atoi(cred.ExpiryMonth)
	if err != nil || month < 1 || month > 12 {
		return invalidField("expiry_month", "expiry month must be between 1 and 12")
	}
	if _, err = strconv.Atoi(cred.ExpiryYear); err != nil {
		return invalidField("expiry_year", "expiry year must be a number")
	}
	if !cvvPattern.MatchString(cred.CVV) {
		return invalidField("cvv", "cvv must be 3 or 4 digits")
	}
	return nil
}

func validateApp(cred models.AppCredential) error {
	if cred.AppName == "" {
		return invalidField("app_name", "application name is required")
	}
	if cred.PackageName == "" {
		return invalidField("package_name", "package name is required")
	}
	if cred.Username == "" {
		return invalidField("username", "username is required")
	}
	if cred.Password == "" {
		return invalidField("password", "password is required")
	}
	return nil
}
