// Package notify sends SMS notifications through Twilio. The notifier is a
// no-op when the Twilio environment variables are absent, so local setups
// work without an account.
package notify

import (
	"fmt"
	"log"
	"os"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

type Notifier struct {
	client *twilio.RestClient
	from   string
}

// NewFromEnv builds a notifier from TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN
// and TWILIO_FROM_NUMBER. Returns nil when unconfigured.
func NewFromEnv() *Notifier {
	sid := os.Getenv("TWILIO_ACCOUNT_SID")
	token := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_FROM_NUMBER")
	if sid == "" || token == "" || from == "" {
		return nil
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})
	return &Notifier{client: client, from: from}
}

// ResponseVerified tells a responder their project submission was accepted.
// Failures are logged, not propagated; verification must not fail because an
// SMS did.
func (n *Notifier) ResponseVerified(to, projectTitle string) {
	if n == nil || to == "" {
		return
	}

	params := &api.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.from)
	params.SetBody(fmt.Sprintf("Your response to %q has been verified. Payment is on the way.", projectTitle))

	if _, err := n.client.Api.CreateMessage(params); err != nil {
		log.Printf("Failed to send verification SMS to %s: %v", to, err)
	}
}
