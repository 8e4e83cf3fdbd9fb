// Package page drives the Mesto gallery page: it loads the profile and the
// cards, wires the forms and popups, and sends user actions to the API.
//
// A Page owns a document. User actions must run through Do, which holds the
// page lock; request completions take the same lock, so the document is never
// touched by two goroutines at once.
//
//	doc, _ := page.NewDocument()
//	p, err := page.New(doc, client, page.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	if err := p.Load(ctx); err != nil {
//		return err
//	}
//	p.Do(func(doc *dom.Document) {
//		doc.QuerySelector(".profile__add-button").Click()
//	})
//	_ = p.Wait(ctx)
package page
