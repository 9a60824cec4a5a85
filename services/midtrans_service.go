package services

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"os"
	"sync"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

// MidtransService wraps the Midtrans core API for QRIS charges.
type MidtransService struct {
	client    coreapi.Client
	serverKey string
}

var (
	midtransService *MidtransService
	midtransOnce    sync.Once
)

// GetMidtransService returns the singleton gateway client, configured from
// MIDTRANS_SERVER_KEY and MIDTRANS_ENV.
func GetMidtransService() *MidtransService {
	midtransOnce.Do(func() {
		serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
		env := midtrans.Sandbox
		if os.Getenv("MIDTRANS_ENV") == "production" {
			env = midtrans.Production
		}

		var client coreapi.Client
		client.New(serverKey, env)

		midtransService = &MidtransService{
			client:    client,
			serverKey: serverKey,
		}
	})
	return midtransService
}

// ChargeQRIS creates a QRIS charge and returns the QR code URL the customer
// scans.
func (ms *MidtransService) ChargeQRIS(referenceID string, amount float64) (string, error) {
	req := &coreapi.ChargeReq{
		PaymentType: coreapi.PaymentTypeQris,
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  referenceID,
			GrossAmt: int64(amount),
		},
	}

	resp, err := ms.client.ChargeTransaction(req)
	if err != nil {
		return "", fmt.Errorf("midtrans charge failed: %v", err)
	}

	for _, action := range resp.Actions {
		if action.Name == "generate-qr-code" {
			return action.URL, nil
		}
	}
	return "", fmt.Errorf("midtrans response carried no QR code action")
}

// VerifySignature checks a notification's signature key:
// sha512(order_id + status_code + gross_amount + server_key).
func (ms *MidtransService) VerifySignature(orderID, statusCode, grossAmount, signature string) bool {
	h := sha512.New()
	h.Write([]byte(orderID + statusCode + grossAmount + ms.serverKey))
	return hex.EncodeToString(h.Sum(nil)) == signature
}
