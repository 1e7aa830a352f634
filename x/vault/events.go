package vault

import (
	"fmt"
	"strconv"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/orm"
)

// Event names. Each emitted tag key has the form <event>.<attribute>.
const (
	EventVaultCreated         = "VaultCreated"
	EventTransactionSubmitted = "TransactionSubmitted"
	EventTransactionApproved  = "TransactionApproved"
	EventTransactionExecuted  = "TransactionExecuted"
	EventExecutionDeferred    = "ExecutionDeferred"
)

func tag(event, attr, value string) coffer.KVPair {
	return coffer.KVPair{
		Key:   []byte(event + "." + attr),
		Value: []byte(value),
	}
}

// FormatID returns the decimal representation of a sequence id.
func FormatID(id []byte) string {
	if orm.ValidateSequence(id) != nil {
		return fmt.Sprintf("%X", id)
	}
	return strconv.FormatInt(orm.DecodeSequence(id), 10)
}

func vaultCreatedTags(vaultID []byte) []coffer.KVPair {
	return []coffer.KVPair{
		tag(EventVaultCreated, "vault_id", FormatID(vaultID)),
		tag(EventVaultCreated, "address", Address(vaultID).String()),
	}
}

func submittedTags(p *Proposal) []coffer.KVPair {
	return []coffer.KVPair{
		tag(EventTransactionSubmitted, "vault_id", FormatID(p.VaultID)),
		tag(EventTransactionSubmitted, "id", FormatID(p.ID)),
		tag(EventTransactionSubmitted, "beneficiary", p.Beneficiary.String()),
		tag(EventTransactionSubmitted, "amount", p.Amount.String()),
	}
}

func approvedTags(p *Proposal, approver coffer.Address) []coffer.KVPair {
	return []coffer.KVPair{
		tag(EventTransactionApproved, "vault_id", FormatID(p.VaultID)),
		tag(EventTransactionApproved, "id", FormatID(p.ID)),
		tag(EventTransactionApproved, "approver", approver.String()),
	}
}

func executedTags(p *Proposal) []coffer.KVPair {
	return []coffer.KVPair{
		tag(EventTransactionExecuted, "vault_id", FormatID(p.VaultID)),
		tag(EventTransactionExecuted, "id", FormatID(p.ID)),
		tag(EventTransactionExecuted, "beneficiary", p.Beneficiary.String()),
		tag(EventTransactionExecuted, "amount", p.Amount.String()),
	}
}

func deferredTags(p *Proposal) []coffer.KVPair {
	return []coffer.KVPair{
		tag(EventExecutionDeferred, "vault_id", FormatID(p.VaultID)),
		tag(EventExecutionDeferred, "id", FormatID(p.ID)),
	}
}
