package email

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

func TestReceiptBodyFormatsPenceAsPounds(t *testing.T) {
	body := receiptBody("Navy blazer", 1750)
	assert.Equal(t, "The buyer has confirmed receipt of 'Navy blazer'. £17.50 will be released to you shortly.", body)
}

func TestDispatchBodyNamesTheListing(t *testing.T) {
	assert.Contains(t, dispatchBody("Grey trousers"), "'Grey trousers'")
}

func TestUnconfiguredSenderDropsMail(t *testing.T) {
	s := NewSMTPSender("", 0, "", "", logger.NewNop())
	assert.NoError(t, s.SendDispatchNotice("buyer@example.com", "Navy blazer"))
	assert.NoError(t, s.SendReceiptNotice("seller@example.com", "Navy blazer", 1750))
}
