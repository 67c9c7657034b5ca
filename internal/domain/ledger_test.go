package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func mov(id, clientID string, date time.Time, kind MovementKind, debit, credit int64) Movement {
	return Movement{
		ID:             id,
		ClientID:       clientID,
		Date:           date,
		Kind:           kind,
		DocumentNumber: "DOC-" + id,
		Debit:          decimal.NewFromInt(debit),
		Credit:         decimal.NewFromInt(credit),
	}
}

func TestComputeAccount_RunningBalances(t *testing.T) {
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 5)
	d3 := d1.AddDate(0, 0, 10)

	movements := []Movement{
		mov("m1", "c1", d1, MovementInvoice, 1000, 0),
		mov("m2", "c1", d2, MovementPayment, 0, 400),
		mov("m3", "c1", d3, MovementCreditNote, 0, 600),
	}

	account, err := ComputeAccount(movements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int64{1000, 600, 0}
	if len(account.Lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(account.Lines))
	}
	for i, w := range want {
		if !account.Lines[i].Balance.Equal(decimal.NewFromInt(w)) {
			t.Errorf("line %d: expected balance %d, got %s", i, w, account.Lines[i].Balance)
		}
	}

	if !account.FinalBalance.IsZero() {
		t.Errorf("expected zero final balance, got %s", account.FinalBalance)
	}
	if account.Status != StatusSettled {
		t.Errorf("expected settled, got %s", account.Status)
	}
}

func TestComputeAccount_SingleDebit(t *testing.T) {
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	account, err := ComputeAccount([]Movement{mov("m1", "c1", d1, MovementInvoice, 500, 0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !account.FinalBalance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected final balance 500, got %s", account.FinalBalance)
	}
	if account.Status != StatusDebtor {
		t.Errorf("expected debtor, got %s", account.Status)
	}
	if len(account.Lines) != 1 || !account.Lines[0].Balance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected single line with balance 500, got %+v", account.Lines)
	}
}

func TestComputeAccount_SortsByDate(t *testing.T) {
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 5)
	d3 := d1.AddDate(0, 0, 10)

	// Supplied out of date order; the engine must re-sort before accumulating.
	shuffled := []Movement{
		mov("m3", "c1", d3, MovementCreditNote, 0, 600),
		mov("m1", "c1", d1, MovementInvoice, 1000, 0),
		mov("m2", "c1", d2, MovementPayment, 0, 400),
	}

	account, err := ComputeAccount(shuffled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantIDs := []string{"m1", "m2", "m3"}
	wantBalances := []int64{1000, 600, 0}
	for i := range wantIDs {
		if account.Lines[i].Movement.ID != wantIDs[i] {
			t.Errorf("line %d: expected movement %s, got %s", i, wantIDs[i], account.Lines[i].Movement.ID)
		}
		if !account.Lines[i].Balance.Equal(decimal.NewFromInt(wantBalances[i])) {
			t.Errorf("line %d: expected balance %d, got %s", i, wantBalances[i], account.Lines[i].Balance)
		}
	}
}

func TestComputeAccount_StableForSameDate(t *testing.T) {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	movements := []Movement{
		mov("first", "c1", d, MovementInvoice, 100, 0),
		mov("second", "c1", d, MovementInvoice, 200, 0),
		mov("third", "c1", d, MovementPayment, 0, 50),
	}

	account, err := ComputeAccount(movements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same-date movements keep source order.
	wantIDs := []string{"first", "second", "third"}
	for i, id := range wantIDs {
		if account.Lines[i].Movement.ID != id {
			t.Errorf("line %d: expected %s, got %s", i, id, account.Lines[i].Movement.ID)
		}
	}
}

func TestComputeAccount_Deterministic(t *testing.T) {
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	movements := []Movement{
		mov("m1", "c1", d1, MovementInvoice, 750, 0),
		mov("m2", "c1", d1.AddDate(0, 0, 1), MovementPayment, 0, 250),
	}

	first, err := ComputeAccount(movements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ComputeAccount(movements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.FinalBalance.Equal(second.FinalBalance) {
		t.Errorf("final balances differ: %s vs %s", first.FinalBalance, second.FinalBalance)
	}
	for i := range first.Lines {
		if first.Lines[i].Movement.ID != second.Lines[i].Movement.ID ||
			!first.Lines[i].Balance.Equal(second.Lines[i].Balance) {
			t.Errorf("line %d differs between runs", i)
		}
	}
}

func TestComputeAccount_FinalBalanceIsOrderInvariant(t *testing.T) {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	movements := []Movement{
		mov("m1", "c1", d, MovementInvoice, 300, 0),
		mov("m2", "c1", d, MovementDebitNote, 120, 0),
		mov("m3", "c1", d, MovementPayment, 0, 200),
	}
	permuted := []Movement{movements[2], movements[0], movements[1]}

	a, err := ComputeAccount(movements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := ComputeAccount(permuted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Intermediate balances may differ for same-date permutations, the
	// final balance may not.
	if !a.FinalBalance.Equal(b.FinalBalance) {
		t.Errorf("final balances differ: %s vs %s", a.FinalBalance, b.FinalBalance)
	}
}

func TestComputeAccount_Additivity(t *testing.T) {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	movements := []Movement{
		mov("m1", "c1", d.AddDate(0, 0, 3), MovementInvoice, 999, 0),
		mov("m2", "c1", d, MovementPayment, 0, 450),
		mov("m3", "c1", d.AddDate(0, 0, 1), MovementDebitNote, 50, 0),
		mov("m4", "c1", d.AddDate(0, 0, 2), MovementCreditNote, 0, 99),
	}

	sum := decimal.Zero
	for i := range movements {
		sum = sum.Add(movements[i].Delta())
	}

	account, err := ComputeAccount(movements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !account.FinalBalance.Equal(sum) {
		t.Errorf("expected final balance %s, got %s", sum, account.FinalBalance)
	}
}

func TestComputeAccount_Empty(t *testing.T) {
	account, err := ComputeAccount(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !account.FinalBalance.IsZero() {
		t.Errorf("expected zero balance, got %s", account.FinalBalance)
	}
	if account.Status != StatusSettled {
		t.Errorf("expected settled, got %s", account.Status)
	}
	if len(account.Lines) != 0 {
		t.Errorf("expected no lines, got %d", len(account.Lines))
	}
}

func TestComputeAccount_ZeroMovementIsInert(t *testing.T) {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	account, err := ComputeAccount([]Movement{
		mov("m1", "c1", d, MovementInvoice, 100, 0),
		mov("m2", "c1", d.AddDate(0, 0, 1), MovementPayment, 0, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !account.FinalBalance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected balance 100, got %s", account.FinalBalance)
	}
	if !account.Lines[1].Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("zero movement changed the running balance: %s", account.Lines[1].Balance)
	}
}

func TestComputeAccount_RejectsNegativeAmounts(t *testing.T) {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	m := mov("bad-movement", "c1", d, MovementInvoice, 0, 0)
	m.Debit = decimal.NewFromInt(-10)

	_, err := ComputeAccount([]Movement{m})
	if !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	// The error names the offending movement.
	if got := err.Error(); !strings.Contains(got, "bad-movement") {
		t.Errorf("error does not name the movement: %s", got)
	}
}

func TestComputeAccount_RejectsMixedClients(t *testing.T) {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := ComputeAccount([]Movement{
		mov("m1", "c1", d, MovementInvoice, 100, 0),
		mov("m2", "c2", d, MovementInvoice, 100, 0),
	})
	if !errors.Is(err, ErrMixedClients) {
		t.Fatalf("expected ErrMixedClients, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		want    AccountStatus
	}{
		{"zero is settled", "0", StatusSettled},
		{"one cent owed is debtor", "0.01", StatusDebtor},
		{"one cent in favor is creditor", "-0.01", StatusCreditor},
		{"large positive", "15000", StatusDebtor},
		{"large negative", "-15000", StatusCreditor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance, err := decimal.NewFromString(tt.balance)
			if err != nil {
				t.Fatalf("bad fixture: %v", err)
			}
			if got := Classify(balance); got != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.balance, got, tt.want)
			}
		})
	}
}

func TestComputeAccounts_GroupsAndOmitsEmpty(t *testing.T) {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	movements := []Movement{
		mov("m1", "c2", d, MovementInvoice, 200, 0),
		mov("m2", "c1", d, MovementInvoice, 100, 0),
		mov("m3", "c2", d.AddDate(0, 0, 1), MovementPayment, 0, 200),
	}

	accounts, err := ComputeAccounts(movements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One account per client with movements, ordered by client id. A
	// client with no movements simply never appears.
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].ClientID != "c1" || accounts[1].ClientID != "c2" {
		t.Errorf("unexpected order: %s, %s", accounts[0].ClientID, accounts[1].ClientID)
	}
	if accounts[0].Status != StatusDebtor {
		t.Errorf("c1: expected debtor, got %s", accounts[0].Status)
	}
	if accounts[1].Status != StatusSettled {
		t.Errorf("c2: expected settled, got %s", accounts[1].Status)
	}
}

func TestSummarizeAccounts(t *testing.T) {
	d := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	movements := []Movement{
		mov("m1", "debtor", d, MovementInvoice, 500, 0),
		mov("m2", "creditor", d, MovementPayment, 0, 300),
		mov("m3", "settled", d, MovementInvoice, 100, 0),
		mov("m4", "settled", d.AddDate(0, 0, 1), MovementPayment, 0, 100),
	}

	accounts, err := ComputeAccounts(movements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := SummarizeAccounts(accounts)
	if summary.Debtors != 1 || summary.Creditors != 1 || summary.Settled != 1 {
		t.Errorf("unexpected counts: %+v", summary)
	}
	if !summary.TotalBalance.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected total balance 200, got %s", summary.TotalBalance)
	}
}
