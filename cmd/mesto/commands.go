package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/dmitrymomot/mesto/pkg/card"
	"github.com/dmitrymomot/mesto/pkg/dom"
	"github.com/dmitrymomot/mesto/pkg/page"
	"github.com/dmitrymomot/mesto/pkg/validation"
)

const waitTimeout = 30 * time.Second

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("mesto "+name, flag.ContinueOnError)
	fs.SetOutput(a.opts.stderr)
	return fs
}

func renderCmd(ctx context.Context, a *app, args []string) error {
	if err := a.flags("render").Parse(args); err != nil {
		return err
	}
	p, err := a.openPage(ctx, a.cfg.Lang, a.failed.add)
	if err != nil {
		return err
	}
	defer p.Close()
	return p.Render(a.opts.stdout)
}

func profileCmd(ctx context.Context, a *app, args []string) error {
	fs := a.flags("profile")
	name := fs.String("name", "", "new profile name (default: keep)")
	about := fs.String("about", "", "new profile description (default: keep)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return a.submit(ctx, formAction{
		opener: ".profile__edit-button",
		popup:  ".popup_type_edit",
		fields: map[string]*string{"name-input": optional(fs, "name", name), "description-input": optional(fs, "about", about)},
		report: func(doc *dom.Document) {
			fmt.Fprintln(a.opts.stdout, doc.QuerySelector(".profile__title").TextContent())
			fmt.Fprintln(a.opts.stdout, doc.QuerySelector(".profile__description").TextContent())
		},
	})
}

func avatarCmd(ctx context.Context, a *app, args []string) error {
	fs := a.flags("avatar")
	link := fs.String("link", "", "avatar image URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return a.submit(ctx, formAction{
		opener: ".profile__image",
		popup:  ".popup_type_edit-avatar",
		fields: map[string]*string{"avatar-input": link},
		report: func(doc *dom.Document) {
			fmt.Fprintln(a.opts.stdout, doc.QuerySelector(".profile__image").Style("background-image"))
		},
	})
}

func addCardCmd(ctx context.Context, a *app, args []string) error {
	fs := a.flags("add-card")
	name := fs.String("name", "", "card title")
	link := fs.String("link", "", "image URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return a.submit(ctx, formAction{
		opener: ".profile__add-button",
		popup:  ".popup_type_new-card",
		fields: map[string]*string{"place-name-input": name, "link-input": link},
		report: func(doc *dom.Document) {
			if el := doc.QuerySelector(".places__list " + card.Selector); el != nil {
				fmt.Fprintln(a.opts.stdout, el.Attr(card.IDAttr))
			}
		},
	})
}

func likeCmd(ctx context.Context, a *app, args []string) error {
	fs := a.flags("like")
	id := fs.String("id", "", "card id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return a.cardAction(ctx, *id, card.LikeButtonSelector, func(el *dom.Element) {
		state := "unliked"
		if el.QuerySelector(card.LikeButtonSelector).HasClass(card.LikeActiveClass) {
			state = "liked"
		}
		fmt.Fprintf(a.opts.stdout, "%s %s, likes: %s\n", state, *id, el.QuerySelector(card.LikeCountSelector).TextContent())
	})
}

func deleteCmd(ctx context.Context, a *app, args []string) error {
	fs := a.flags("delete")
	id := fs.String("id", "", "card id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return a.cardAction(ctx, *id, card.DeleteSelector, func(el *dom.Element) {
		if el.Connected() {
			return
		}
		fmt.Fprintf(a.opts.stdout, "deleted %s\n", *id)
	})
}

// optional returns value when the flag was given and nil otherwise.
func optional(fs *flag.FlagSet, name string, value *string) *string {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	if !set {
		return nil
	}
	return value
}

// formAction opens a popup, types the non-nil fields by input id and submits
// the form when its submit control is enabled.
type formAction struct {
	opener string
	popup  string
	fields map[string]*string
	report func(doc *dom.Document)
}

func (a *app) submit(ctx context.Context, fa formAction) error {
	p, err := a.openPage(ctx, a.cfg.Lang, a.failed.add)
	if err != nil {
		return err
	}
	defer p.Close()

	cfg := validation.DefaultConfig()
	var problems []string
	submitted := false
	p.Do(func(doc *dom.Document) {
		doc.QuerySelector(fa.opener).Click()
		form := doc.QuerySelector(fa.popup + " " + cfg.FormSelector)
		if form == nil {
			return
		}
		for id, value := range fa.fields {
			if value == nil {
				continue
			}
			if input := doc.GetElementByID(id); input != nil {
				input.Input(*value)
			}
		}
		// Untouched invalid inputs show no message yet but still block the form.
		for _, input := range form.QuerySelectorAll(cfg.InputSelector) {
			if msg := input.ValidationMessage(); msg != "" {
				problems = append(problems, input.Attr("name")+": "+msg)
			}
		}
		button := form.QuerySelector(cfg.SubmitButtonSelector)
		if button == nil || button.Disabled() {
			return
		}
		button.Click()
		submitted = true
	})

	for _, msg := range problems {
		fmt.Fprintln(a.opts.stderr, msg)
	}
	if !submitted {
		return errInvalidForm
	}
	return a.settle(ctx, p, fa.report)
}

// cardAction clicks the control matched by selector on the card with id.
func (a *app) cardAction(ctx context.Context, id, selector string, report func(el *dom.Element)) error {
	if id == "" {
		return fmt.Errorf("%w: -id", errMissingFlag)
	}
	p, err := a.openPage(ctx, a.cfg.Lang, a.failed.add)
	if err != nil {
		return err
	}
	defer p.Close()

	var el *dom.Element
	var actionErr error
	p.Do(func(doc *dom.Document) {
		el = card.Find(doc.QuerySelector(".places__list"), id)
		if el == nil {
			actionErr = fmt.Errorf("%w: %s", errCardNotFound, id)
			return
		}
		control := el.QuerySelector(selector)
		if control == nil {
			actionErr = fmt.Errorf("%w: %s", errForeignCard, id)
			return
		}
		control.Click()
	})
	if actionErr != nil {
		return actionErr
	}
	return a.settle(ctx, p, func(*dom.Document) { report(el) })
}

// settle waits for the requests of p and reports the document unless one
// of them failed.
func (a *app) settle(ctx context.Context, p *page.Page, report func(doc *dom.Document)) error {
	ctx, cancel := context.WithTimeout(ctx, waitTimeout)
	defer cancel()
	if err := p.Wait(ctx); err != nil {
		return err
	}
	if err := a.failed.err(); err != nil {
		return errors.Join(errRequestFailed, err)
	}
	p.Do(report)
	return nil
}
