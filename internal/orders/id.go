package orders

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewID formats an order id as PREFIX-YYMMDD-XXXX with a random suffix.
func NewID(prefix string, now time.Time) (string, error) {
	suffix := make([]byte, 4)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		suffix[i] = idAlphabet[n.Int64()]
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.UTC().Format("060102"), suffix), nil
}

// shortRef is the tail of an id shown in buyer messages.
func shortRef(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
