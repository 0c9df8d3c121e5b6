package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex inst_01HV3K9Q2Z8X7Y6W5V4U3T2S1R
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	UUID_PREFIX_CONTRACT    = "ctr"
	UUID_PREFIX_INSTALLMENT = "inst"

	UUID_PREFIX_WEBHOOK_EVENT = "webhook"
)
