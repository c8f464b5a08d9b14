package checkout

import (
	"errors"
	"sync"

	razorpay "github.com/razorpay/razorpay-go"
	rputils "github.com/razorpay/razorpay-go/utils"
)

// PaymentGateway is the async boundary around the payment widget. The widget
// itself runs in the browser; this side prepares its configuration and
// verifies the signed success callback. The three outcomes (success,
// dismissed, failed) arrive as distinct operations on the orchestrator, never
// as a single resolved/rejected result.
type PaymentGateway interface {
	// Ensure initializes the gateway client exactly once; an initialization
	// failure aborts the checkout with a user-visible error.
	Ensure() error
	// WidgetKey is the publishable key the widget is configured with.
	WidgetKey() string
	// VerifyPayment checks the gateway's HMAC signature over a success
	// callback before the booking is completed.
	VerifyPayment(orderID, paymentID, signature string) error
}

// RazorpayGateway implements PaymentGateway.
type RazorpayGateway struct {
	KeyID  string
	Secret string

	once    sync.Once
	client  *razorpay.Client
	initErr error
}

// NewRazorpayGateway builds the gateway adapter. The client is constructed
// lazily on first use.
func NewRazorpayGateway(keyID, secret string) *RazorpayGateway {
	return &RazorpayGateway{KeyID: keyID, Secret: secret}
}

func (g *RazorpayGateway) Ensure() error {
	g.once.Do(func() {
		if g.KeyID == "" || g.Secret == "" {
			g.initErr = errors.New("payment gateway credentials not configured")
			return
		}
		g.client = razorpay.NewClient(g.KeyID, g.Secret)
	})
	return g.initErr
}

func (g *RazorpayGateway) WidgetKey() string {
	return g.KeyID
}

func (g *RazorpayGateway) VerifyPayment(orderID, paymentID, signature string) error {
	if err := g.Ensure(); err != nil {
		return err
	}
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	if !rputils.VerifyPaymentSignature(params, signature, g.Secret) {
		return errors.New("payment signature verification failed")
	}
	return nil
}
