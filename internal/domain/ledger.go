package domain

import (
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// AccountStatus classifies a client's current account by its final balance.
type AccountStatus string

const (
	// StatusDebtor means the client owes money (positive balance).
	StatusDebtor AccountStatus = "debtor"
	// StatusCreditor means the client has a credit in their favor (negative balance).
	StatusCreditor AccountStatus = "creditor"
	// StatusSettled means the account is at zero.
	StatusSettled AccountStatus = "settled"
)

// AccountLine is a movement together with the running balance
// immediately after it, in date order.
type AccountLine struct {
	Movement Movement
	Balance  decimal.Decimal
}

// ClientAccount is the current-account projection for one client. It is
// never persisted; it is recomputed from the movement list on every read.
type ClientAccount struct {
	ClientID     string
	Lines        []AccountLine
	TotalDebit   decimal.Decimal
	TotalCredit  decimal.Decimal
	FinalBalance decimal.Decimal
	Status       AccountStatus
}

// Classify maps a final balance to its account status. Positive means
// the client owes (debtor), negative means credit in the client's favor.
func Classify(balance decimal.Decimal) AccountStatus {
	switch {
	case balance.IsPositive():
		return StatusDebtor
	case balance.IsNegative():
		return StatusCreditor
	default:
		return StatusSettled
	}
}

// ComputeAccount builds the running-balance projection for a single
// client's movements. The input may arrive in any order; movements are
// stable-sorted ascending by date, so same-date movements keep their
// source order and the output is deterministic. An empty input yields a
// settled account with zero balance.
//
// All movements must belong to the same client; mixed input fails with
// ErrMixedClients instead of producing a meaningless aggregate.
func ComputeAccount(movements []Movement) (*ClientAccount, error) {
	account := &ClientAccount{
		TotalDebit:   decimal.Zero,
		TotalCredit:  decimal.Zero,
		FinalBalance: decimal.Zero,
		Status:       StatusSettled,
	}

	if len(movements) == 0 {
		return account, nil
	}

	account.ClientID = movements[0].ClientID
	for i := range movements {
		if err := movements[i].Validate(); err != nil {
			return nil, err
		}
		if movements[i].ClientID != account.ClientID {
			return nil, ErrMixedClients
		}
	}

	ordered := make([]Movement, len(movements))
	copy(ordered, movements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	balance := decimal.Zero
	account.Lines = make([]AccountLine, 0, len(ordered))
	for _, m := range ordered {
		balance = balance.Add(m.Delta())
		account.TotalDebit = account.TotalDebit.Add(m.Debit)
		account.TotalCredit = account.TotalCredit.Add(m.Credit)
		account.Lines = append(account.Lines, AccountLine{Movement: m, Balance: balance})
	}

	account.FinalBalance = balance
	account.Status = Classify(balance)

	return account, nil
}

// ComputeAccounts groups movements by client and computes one account
// per client that has at least one movement. Output is ordered by client
// id so repeated runs over the same input are identical.
func ComputeAccounts(movements []Movement) ([]*ClientAccount, error) {
	byClient := make(map[string][]Movement)
	for _, m := range movements {
		byClient[m.ClientID] = append(byClient[m.ClientID], m)
	}

	clientIDs := make([]string, 0, len(byClient))
	for id := range byClient {
		clientIDs = append(clientIDs, id)
	}
	slices.Sort(clientIDs)

	accounts := make([]*ClientAccount, 0, len(clientIDs))
	for _, id := range clientIDs {
		account, err := ComputeAccount(byClient[id])
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

// AccountsSummary aggregates classification counts and the sum of final
// balances across a set of computed accounts.
type AccountsSummary struct {
	Debtors      int
	Creditors    int
	Settled      int
	TotalBalance decimal.Decimal
}

// SummarizeAccounts folds accounts into an AccountsSummary.
func SummarizeAccounts(accounts []*ClientAccount) AccountsSummary {
	summary := AccountsSummary{TotalBalance: decimal.Zero}
	for _, a := range accounts {
		switch a.Status {
		case StatusDebtor:
			summary.Debtors++
		case StatusCreditor:
			summary.Creditors++
		default:
			summary.Settled++
		}
		summary.TotalBalance = summary.TotalBalance.Add(a.FinalBalance)
	}
	return summary
}
