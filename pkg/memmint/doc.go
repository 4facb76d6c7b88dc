// Package memmint is an in-memory wallet collaborator for local development
// and tests.
//
// A Wallet keeps sources, balances, quotes, bearer tokens and external
// payment requests in memory. Nothing is paid automatically: tests drive
// confirmations with Pay and Expire, create payable requests with Invoice,
// and inject collaborator failures with FailNext.
//
//	w := memmint.New(memmint.WithSource("https://mint.example.com", 500))
//	a, _ := wallet.New(w.Connector())
//
//	// after BeginConfirmReceive has produced quote q:
//	_ = w.Pay(q.ID)
package memmint
