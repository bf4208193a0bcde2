package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"logistics/internal/entities"
)

var (
	ErrSignatureMismatch = errors.New("signature mismatch")
	ErrMalformedCallback = errors.New("malformed callback")
)

// Gateway выдает подписанные ссылки на оплату и проверяет подпись уведомлений.
// Подпись: hex(HMAC-SHA256(secret, order_id|amount|reference)).
type Gateway struct {
	baseURL *url.URL
	secret  []byte
	newRef  func() string
}

func New(baseURL, secret string) (*Gateway, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("payment base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("payment base url %q must be absolute", baseURL)
	}
	if secret == "" {
		return nil, errors.New("payment secret is required")
	}

	return &Gateway{
		baseURL: u,
		secret:  []byte(secret),
		newRef:  uuid.NewString,
	}, nil
}

func (g *Gateway) CreatePaymentURL(_ context.Context, orderID string, amount int64) (string, error) {
	if orderID == "" || amount <= 0 {
		return "", fmt.Errorf("%w: order id and positive amount are required", entities.ErrValidation)
	}

	ref := g.newRef()
	u := *g.baseURL
	q := u.Query()
	q.Set("order_id", orderID)
	q.Set("amount", strconv.FormatInt(amount, 10))
	q.Set("reference", ref)
	q.Set("signature", g.sign(orderID, amount, ref))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (g *Gateway) VerifyCallback(callback entities.PaymentCallback) error {
	if callback.OrderID == "" || callback.Reference == "" || callback.Signature == "" {
		return ErrMalformedCallback
	}

	got, err := hex.DecodeString(callback.Signature)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedCallback, err)
	}
	want := g.mac(callback.OrderID, callback.Amount, callback.Reference)
	if !hmac.Equal(got, want) {
		return ErrSignatureMismatch
	}
	return nil
}

func (g *Gateway) sign(orderID string, amount int64, ref string) string {
	return hex.EncodeToString(g.mac(orderID, amount, ref))
}

func (g *Gateway) mac(orderID string, amount int64, ref string) []byte {
	h := hmac.New(sha256.New, g.secret)
	h.Write([]byte(orderID + "|" + strconv.FormatInt(amount, 10) + "|" + ref))
	return h.Sum(nil)
}
