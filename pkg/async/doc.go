// Package async runs functions on their own goroutines and exposes their
// outcome as typed futures.
//
// Go starts a function and returns a Future; Await blocks until the function
// returns or the caller's context ends. Join2 waits for two futures of
// different types, which is how independent requests are issued together and
// joined before their results are used:
//
//	user := async.Go(ctx, api.GetUserInfo)
//	cards := async.Go(ctx, api.GetCardList)
//	u, list, err := async.Join2(ctx, user, cards)
//
// Group tracks fire-and-forget work so a caller can wait for everything still
// in flight, for example before a process exits.
package async
